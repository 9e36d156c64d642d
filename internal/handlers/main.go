package handlers

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	genieweb "github.com/genieai/genie-web"
	"github.com/genieai/genie-web/internal/models"
	"github.com/genieai/genie-web/internal/session"
	"github.com/tmaxmax/go-sse"
)

// Main serves the chat UI. It renders the pages from the embedded templates, routes form submissions
// to the session of the requesting browser, and pushes every state change of that session to the
// browser through server-sent events.
type Main struct {
	sseSrv    *sse.Server
	templates *template.Template

	sessions *session.Registry

	logger *slog.Logger
}

type sessionIDKey struct{}

const (
	sessionCookieName = "genie_session"

	errLoggerKey = "err"
)

// NewMain creates a new Main instance serving the sessions of registry. It initializes the SSE server,
// subscribing each client to the topic of its own session, and parses the HTML templates from the
// embedded filesystem.
func NewMain(registry *session.Registry, logger *slog.Logger) (Main, error) {
	// We parse templates from three distinct directories to separate layout, pages, and partial views
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"label": models.PromptLabel,
	}).ParseFS(
		genieweb.TemplateFS,
		"templates/layout/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return Main{}, fmt.Errorf("failed to parse templates: %w", err)
	}

	return Main{
		sseSrv: &sse.Server{
			OnSession: func(s *sse.Session) (sse.Subscription, bool) {
				topics := []string{sse.DefaultTopic}

				// A client only receives the updates of the session HandleSSE resolved for it
				if id, ok := s.Req.Context().Value(sessionIDKey{}).(string); ok {
					topics = append(topics, sessionTopic(id))
				}

				// Send the headers right away so the browser stores a renewed cookie before its next post
				if err := s.Flush(); err != nil {
					return sse.Subscription{}, false
				}

				return sse.Subscription{
					Client:      s,
					LastEventID: s.LastEventID,
					Topics:      topics,
				}, true
			},
		},
		templates: tmpl,
		sessions:  registry,
		logger:    logger.With(slog.String("module", "handlers")),
	}, nil
}

func sessionTopic(sessionID string) string {
	return fmt.Sprintf("session-%s", sessionID)
}

// session returns the session of the requesting browser, starting a new one and setting its cookie when
// the request carries none or an unknown one. Only the page and the event stream start sessions.
func (m Main) session(w http.ResponseWriter, r *http.Request) *session.Session {
	if s, ok := m.existingSession(r); ok {
		return s
	}

	s := m.sessions.Create()
	m.watch(s)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// existingSession returns the session the cookie of r points to, if the registry knows it.
func (m Main) existingSession(r *http.Request) (*session.Session, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, false
	}
	return m.sessions.Get(c.Value)
}

// HandleSSE streams the updates of the requesting browser's session. A stream opened with an unknown
// cookie, as after a restart, is attached to a new session whose cookie is set on the response.
func (m Main) HandleSSE(w http.ResponseWriter, r *http.Request) {
	s := m.session(w, r)

	ctx := context.WithValue(r.Context(), sessionIDKey{}, s.ID)
	m.sseSrv.ServeHTTP(w, r.WithContext(ctx))
}

// Shutdown gracefully terminates the Main instance's SSE server. It broadcasts a close message to all
// connected clients and waits up to 5 seconds for connections to terminate. After the timeout, any
// remaining connections are forcefully closed.
func (m Main) Shutdown(ctx context.Context) error {
	e := &sse.Message{Type: sse.Type("closeSession")}
	// SSE events must carry data
	e.AppendData("bye")

	// We ignore the error here since we're shutting down anyway
	_ = m.sseSrv.Publish(e)

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	return m.sseSrv.Shutdown(ctx)
}
