package session

import (
	"context"
	"html"
	"log/slog"

	"github.com/genieai/genie-web/internal/reveal"
)

// Completer returns the completion of a prompt. It never fails: any remote problem is already turned
// into a user-facing fallback text.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// Controller runs prompt submissions against a Store.
type Controller struct {
	store     *Store
	completer Completer
	animator  reveal.Animator

	logger *slog.Logger
}

// NewController creates a Controller that submits prompts of store to completer and reveals the
// completions with animator.
func NewController(store *Store, completer Completer, animator reveal.Animator, logger *slog.Logger) Controller {
	return Controller{
		store:     store,
		completer: completer,
		animator:  animator,
		logger:    logger.With(slog.String("module", "controller")),
	}
}

// Submit runs one submission cycle. An empty promptOverride submits the current input and records it
// in the history; a non-empty one replays that prompt without recording it.
//
// Submit blocks until the completion has arrived and the reveal is scheduled. The reveal itself
// continues after Submit returns. A cycle started later supersedes this one: its fragments are then
// discarded instead of leaking into the newer response.
func (c Controller) Submit(ctx context.Context, promptOverride string) {
	gen, prompt := c.store.begin(promptOverride)

	c.logger.Debug("Submitting prompt",
		slog.Uint64("generation", gen),
		slog.Bool("replay", promptOverride != ""),
		slog.Int("promptLength", len(prompt)))

	raw := c.completer.Complete(ctx, prompt)

	// The displayed response is rendered as HTML, so only the markup added by Format may survive.
	fragments := reveal.Fragments(reveal.Format(html.EscapeString(raw)))

	if c.store.startReveal(gen, len(fragments)) {
		c.animator.Reveal(fragments, func(index int, fragment string) {
			c.store.revealFragment(gen, index, fragment)
		})
	} else {
		c.logger.Debug("Dropping stale completion", slog.Uint64("generation", gen))
	}

	c.store.finishLoading(gen)
}
