package session

import (
	"log/slog"
	"sync"

	"github.com/genieai/genie-web/internal/reveal"
	"github.com/google/uuid"
)

// Session couples the state of one browser session with the controller that drives it.
type Session struct {
	ID         string
	Store      *Store
	Controller Controller
}

// Registry keeps the live sessions in memory. Sessions never outlive the process.
type Registry struct {
	completer Completer
	animator  reveal.Animator

	mu       sync.RWMutex
	sessions map[string]*Session

	logger *slog.Logger
}

// NewRegistry creates an empty Registry whose sessions submit to completer and reveal with animator.
func NewRegistry(completer Completer, animator reveal.Animator, logger *slog.Logger) *Registry {
	return &Registry{
		completer: completer,
		animator:  animator,
		sessions:  make(map[string]*Session),
		logger:    logger,
	}
}

// Create starts a new session with a random identifier.
func (r *Registry) Create() *Session {
	store := NewStore()
	s := &Session{
		ID:         uuid.New().String(),
		Store:      store,
		Controller: NewController(store, r.completer, r.animator, r.logger),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Debug("Session created", slog.String("sessionID", s.ID))
	return s
}

// Get returns the session with the given identifier.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	return s, ok
}
