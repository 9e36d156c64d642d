package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/genieai/genie-web/internal/models"
)

type historyEntry struct {
	Prompt string
	Label  string
}

type homePageData struct {
	Input           string
	History         []historyEntry
	ActivePrompt    string
	IsLoading       bool
	IsResultVisible bool
	// Response is built by the session controller, which escapes the completion before formatting it.
	Response template.HTML

	Suggestions []string
}

var suggestions = []string{
	"Suggest beautiful places to see on an upcoming road trip",
	"Summarize this concept: urban planning",
	"Brainstorm team bonding activities for our work retreat",
	"Improve the readability of the following code",
}

func newHomePageData(st models.State) homePageData {
	history := make([]historyEntry, len(st.History))
	for i, prompt := range st.History {
		history[i] = historyEntry{
			Prompt: prompt,
			Label:  models.PromptLabel(prompt),
		}
	}

	return homePageData{
		Input:           st.Input,
		History:         history,
		ActivePrompt:    st.ActivePrompt,
		IsLoading:       st.IsLoading,
		IsResultVisible: st.IsResultVisible,
		Response:        template.HTML(st.DisplayedResponse),
		Suggestions:     suggestions,
	}
}

// HandleHome renders the chat page for the session of the requesting browser, starting a new session
// on the first visit.
func (m Main) HandleHome(w http.ResponseWriter, r *http.Request) {
	s := m.session(w, r)

	if err := m.templates.ExecuteTemplate(w, "home.html", newHomePageData(s.Store.State())); err != nil {
		m.logger.Error("Failed to render home page",
			slog.String("sessionID", s.ID),
			slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
