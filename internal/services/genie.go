package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/genieai/genie-web/internal/models"
)

// LLM is a language model provider that answers a conversation with a single completion.
type LLM interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// Parameters are the sampling settings sent with every request. They are fixed per deployment.
type Parameters struct {
	MaxTokens   int
	Temperature float32
}

// Genie answers prompts in the configured persona. It is the only place where provider failures are
// observed: they are logged and replaced by the fallback text.
type Genie struct {
	llm      LLM
	persona  string
	fallback string

	logger *slog.Logger
}

const (
	// DefaultPersona is the system instruction used when none is configured.
	DefaultPersona = "You are a genie who is energetic, humorous, charismatic, and expressive. " +
		"You respond to user questions quickly in a fast-paced, witty, and engaging tone. " +
		"You also provide informative and useful answers, but always in a fun and genie-like way."

	// DefaultFallback is shown in place of a completion when the provider fails.
	DefaultFallback = "Oops! Your wish hit a snag. Try rubbing the lamp again! 🧞‍♂️"

	// DefaultMaxTokens caps the length of a completion.
	DefaultMaxTokens = 300

	// DefaultTemperature favors creative, varied answers.
	DefaultTemperature float32 = 0.8

	errLoggerKey = "err"
)

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// NewGenie creates a Genie that asks llm in the given persona. An empty fallback falls back to
// DefaultFallback.
func NewGenie(llm LLM, persona, fallback string, logger *slog.Logger) Genie {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return Genie{
		llm:      llm,
		persona:  persona,
		fallback: fallback,
		logger:   logger.With(slog.String("module", "genie")),
	}
}

// Complete returns the completion of prompt, or the fallback text if the provider failed for any
// reason. It never returns an error.
func (g Genie) Complete(ctx context.Context, prompt string) string {
	res := g.complete(ctx, prompt)
	if !res.OK() {
		g.logger.Error("Error from llm provider",
			slog.Int("promptLength", len(prompt)),
			slog.String(errLoggerKey, res.Err.Error()))
		return g.fallback
	}
	return res.Text
}

func (g Genie) complete(ctx context.Context, prompt string) models.Completion {
	text, err := g.llm.Complete(ctx, g.messages(prompt))
	if err != nil {
		return models.Completion{Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Completion{Err: ErrEmptyCompletion}
	}
	return models.Completion{Text: text}
}

func (g Genie) messages(prompt string) []models.Message {
	msgs := make([]models.Message, 0, 2)
	if g.persona != "" {
		msgs = append(msgs, models.Message{Role: models.RoleSystem, Content: g.persona})
	}
	return append(msgs, models.Message{Role: models.RoleUser, Content: prompt})
}
