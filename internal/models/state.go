package models

import "slices"

// Phase is the position of a session in the prompt submission cycle.
type Phase string

const (
	// PhaseIdle means no submission is in flight and no reveal is running. A new submission may begin.
	PhaseIdle Phase = "idle"
	// PhaseLoading means the prompt has been sent and the completion has not arrived yet.
	PhaseLoading Phase = "loading"
	// PhaseRevealing means the formatted completion is being appended fragment by fragment.
	PhaseRevealing Phase = "revealing"
)

// State is a snapshot of everything the UI needs to render a session. Snapshots are copies: mutating
// one never affects the session it was taken from.
type State struct {
	Input             string
	History           []string
	ActivePrompt      string
	IsLoading         bool
	IsResultVisible   bool
	DisplayedResponse string

	Phase Phase
	// Generation identifies the submission cycle the displayed response belongs to. It is incremented
	// every time a submission begins.
	Generation uint64
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.History = slices.Clone(s.History)
	return s
}
