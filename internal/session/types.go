package session

import "time"

// Chat is the preview metadata extracted from one transcript file.
type Chat struct {
	ID           string // file stem, a UUID for real sessions
	FilePath     string
	SubagentDir  string // sibling directory holding subagent transcripts
	FirstMessage string // first substantive user message, cleaned; "" if none
	Timestamp    time.Time
	Size         int64
	HasAssistant bool
}

// Placeholder text for chats with no substantive first message.
const (
	PlaceholderEmpty   = "(empty session)"
	PlaceholderResumed = "(resumed session)"
)

// DisplayMessage returns the first-message text, or a placeholder when the
// transcript holds nothing worth showing.
func (c *Chat) DisplayMessage() string {
	if c.FirstMessage != "" {
		return c.FirstMessage
	}
	if !c.Timestamp.IsZero() {
		return PlaceholderResumed
	}
	return PlaceholderEmpty
}

// TrulyEmpty reports whether the chat has no substantive content at all:
// no user text and no assistant output. These are what purge removes.
func (c *Chat) TrulyEmpty() bool {
	return c.FirstMessage == "" && !c.HasAssistant
}
