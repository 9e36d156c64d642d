package models

import "unicode/utf8"

// Message is a single entry of the conversation sent to a language model provider.
type Message struct {
	Role    Role
	Content string
}

// Role represents the role of a message participant.
type Role string

const (
	// RoleSystem carries the persona instruction that precedes every prompt.
	RoleSystem Role = "system"
	// RoleUser represents the prompt typed (or replayed) by the user.
	RoleUser Role = "user"
)

// PromptLabelLength is the number of characters of a prompt shown in the history sidebar.
const PromptLabelLength = 18

// PromptLabel returns the sidebar label of a prompt: its first PromptLabelLength characters
// followed by an ellipsis.
func PromptLabel(prompt string) string {
	if utf8.RuneCountInString(prompt) <= PromptLabelLength {
		return prompt + "..."
	}
	return string([]rune(prompt)[:PromptLabelLength]) + "..."
}
