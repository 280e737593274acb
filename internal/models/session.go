package models

// SessionState is the position of one chat inside the intake flow.
type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateAwaitingName  SessionState = "awaiting_name"
	StateAwaitingPhone SessionState = "awaiting_phone"
	StateAwaitingFile  SessionState = "awaiting_file"
)

// Draft holds the fields collected so far for one in-progress application.
type Draft struct {
	Name  string
	Phone string // normalized, +998XXXXXXXXX
}

// Session is one chat's conversation state. Ephemeral: lives in memory for
// the duration of a flow, reset to idle on completion or cancellation.
type Session struct {
	ChatID int64
	State  SessionState
	Draft  Draft
}

// Reset clears the draft and returns the session to idle.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Draft = Draft{}
}
