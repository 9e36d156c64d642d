// Package session holds the in-memory state of a chat session and drives the prompt submission cycle
// (idle, loading, revealing, idle) over it.
package session

import (
	"sync"

	"github.com/genieai/genie-web/internal/models"
)

// Store is the single source of truth of one session. Its state is only changed through the named
// transitions below, and every transition notifies the subscribers with a snapshot of the new state.
//
// Subscribers are called synchronously and in transition order. They may read the store through State,
// but must not mutate it.
type Store struct {
	// publishMu serializes transitions together with their notifications, so subscribers never see
	// snapshots out of order.
	publishMu sync.Mutex

	mu    sync.RWMutex
	state models.State

	// Reveal bookkeeping for the current generation.
	revealTotal int
	revealNext  int
	pending     map[int]string

	subs      map[int]func(models.State)
	nextSubID int
}

// NewStore creates the store of a fresh session: empty input, empty history, nothing visible.
func NewStore() *Store {
	return &Store{
		state: models.State{
			History: []string{},
			Phase:   models.PhaseIdle,
		},
		subs: make(map[int]func(models.State)),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to be called after every transition. The returned function removes it.
func (s *Store) Subscribe(fn func(models.State)) func() {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.publishMu.Lock()
		defer s.publishMu.Unlock()
		delete(s.subs, id)
	}
}

// SetInput replaces the current input. Empty input is allowed.
func (s *Store) SetInput(text string) {
	s.update(func(st *models.State) bool {
		st.Input = text
		return true
	})
}

// NewSession hides the result and leaves the loading state. Input and history are kept.
func (s *Store) NewSession() {
	s.update(func(st *models.State) bool {
		st.IsLoading = false
		st.IsResultVisible = false
		return true
	})
}

// begin starts a new submission cycle and returns its generation along with the effective prompt.
// Without promptOverride the current input becomes the prompt and is appended to the history;
// replayed prompts never touch the history.
func (s *Store) begin(promptOverride string) (uint64, string) {
	var (
		gen    uint64
		prompt string
	)
	s.update(func(st *models.State) bool {
		st.Generation++
		st.DisplayedResponse = ""
		st.IsLoading = true
		st.IsResultVisible = true
		st.Phase = models.PhaseLoading

		prompt = promptOverride
		if prompt == "" {
			prompt = st.Input
			st.History = append(st.History, st.Input)
		}
		st.ActivePrompt = prompt

		s.revealTotal = 0
		s.revealNext = 0
		s.pending = nil

		gen = st.Generation
		return true
	})
	return gen, prompt
}

// startReveal announces that total fragments of generation gen are about to be revealed. It reports
// false when gen is stale, in which case the fragments must not be scheduled.
func (s *Store) startReveal(gen uint64, total int) bool {
	current := false
	s.update(func(st *models.State) bool {
		if st.Generation != gen {
			return false
		}
		current = true
		s.revealTotal = total
		s.revealNext = 0
		s.pending = make(map[int]string, total)
		st.Phase = models.PhaseRevealing
		if total == 0 {
			st.Phase = models.PhaseIdle
		}
		return true
	})
	return current
}

// revealFragment appends fragment index of generation gen to the displayed response. Fragments of a
// stale generation are dropped. Fragments arriving ahead of their predecessors are held back until the
// gap is filled, so the displayed response is always a prefix of the full reveal.
func (s *Store) revealFragment(gen uint64, index int, fragment string) {
	s.update(func(st *models.State) bool {
		if st.Generation != gen || st.Phase != models.PhaseRevealing || index < s.revealNext {
			return false
		}
		s.pending[index] = fragment

		changed := false
		for {
			next, ok := s.pending[s.revealNext]
			if !ok {
				break
			}
			delete(s.pending, s.revealNext)
			st.DisplayedResponse += next
			s.revealNext++
			changed = true
		}
		if s.revealNext == s.revealTotal {
			st.Phase = models.PhaseIdle
		}
		return changed
	})
}

// finishLoading ends the loading state of generation gen and clears the input. It is a no-op when a
// newer cycle has already begun.
func (s *Store) finishLoading(gen uint64) {
	s.update(func(st *models.State) bool {
		if st.Generation != gen {
			return false
		}
		st.IsLoading = false
		st.Input = ""
		return true
	})
}

// update applies fn under the lock and, when fn reports a change, notifies the subscribers.
func (s *Store) update(fn func(st *models.State) bool) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	changed := fn(&s.state)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, sub := range s.subs {
		sub(snapshot)
	}
}
