package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/genieai/genie-web/internal/models"
	"github.com/genieai/genie-web/internal/session"
	"github.com/tmaxmax/go-sse"
)

// SSE event types for real-time updates.
var (
	resultSSEType  = sse.Type("result")
	historySSEType = sse.Type("history")
)

// HandleInput stores the text currently typed in the prompt box. The "input" form field may be empty.
func (m Main) HandleInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := m.requireSession(w, r)
	if !ok {
		return
	}
	s.Store.SetInput(r.FormValue("input"))

	w.WriteHeader(http.StatusNoContent)
}

// HandlePrompts starts a prompt submission for the session of the requesting browser.
//
// A "prompt" form field replays that prompt (a history entry) without recording it again. Otherwise the
// "input" form field, or the stored input when the field is absent, is submitted and recorded in the
// history. The handler answers 202 as soon as the submission is started; the loading state, the
// completion and the reveal are delivered over SSE.
func (m Main) HandlePrompts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := m.requireSession(w, r)
	if !ok {
		return
	}

	prompt := r.FormValue("prompt")
	if prompt == "" {
		input := r.FormValue("input")
		if !r.Form.Has("input") {
			input = s.Store.State().Input
		}
		if input == "" {
			m.logger.Error("Prompt is required", slog.String("sessionID", s.ID))
			http.Error(w, "Prompt is required", http.StatusBadRequest)
			return
		}
		s.Store.SetInput(input)
	}

	// The submission outlives the request, so it must not inherit its context
	go s.Controller.Submit(context.Background(), prompt)

	w.WriteHeader(http.StatusAccepted)
}

// HandleNewChat hides the current result of the requesting browser's session.
func (m Main) HandleNewChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := m.requireSession(w, r)
	if !ok {
		return
	}
	s.Store.NewSession()

	w.WriteHeader(http.StatusNoContent)
}

// requireSession answers 400 when the request does not belong to a known session. Posts never start
// sessions: the browser gets its cookie from the page or the event stream.
func (m Main) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := m.existingSession(r)
	if !ok {
		m.logger.Error("Unknown session", slog.String("path", r.URL.Path))
		http.Error(w, "Unknown session", http.StatusBadRequest)
		return nil, false
	}
	return s, true
}

// watch publishes every state change of s to the SSE topic of s. The sidebar is only re-rendered when
// the history changed.
func (m Main) watch(s *session.Session) {
	var lastHistory []string

	s.Store.Subscribe(func(st models.State) {
		data := newHomePageData(st)

		m.publish(s.ID, resultSSEType, "main_panel", data)

		if !slices.Equal(lastHistory, st.History) {
			lastHistory = st.History
			m.publish(s.ID, historySSEType, "history", data)
		}
	})
}

func (m Main) publish(sessionID string, typ sse.EventType, templateName string, data homePageData) {
	var sb strings.Builder
	if err := m.templates.ExecuteTemplate(&sb, templateName, data); err != nil {
		m.logger.Error("Failed to render template",
			slog.String("template", templateName),
			slog.String("sessionID", sessionID),
			slog.String(errLoggerKey, err.Error()))
		return
	}

	msg := sse.Message{
		Type: typ,
	}
	msg.AppendData(sb.String())

	if err := m.sseSrv.Publish(&msg, sessionTopic(sessionID)); err != nil {
		m.logger.Error("Failed to publish state",
			slog.String("sessionID", sessionID),
			slog.String(errLoggerKey, err.Error()))
	}
}
