package flow

import "time"

// Session is the per-user mutable record tracking the active flow, the current
// step within it, and the fields collected so far.
//
// Invariant: Step is set if and only if ActiveFlow is set, and Fields holds
// only values for steps of ActiveFlow that have already been committed.
type Session struct {
	UserID     int64             `json:"user_id" bson:"user_id"`
	ChatID     int64             `json:"chat_id" bson:"chat_id"`
	ActiveFlow FlowID            `json:"active_flow" bson:"active_flow"`
	Step       StepID            `json:"step" bson:"step"`
	Fields     map[string]string `json:"fields" bson:"fields"`
	UpdatedAt  time.Time         `json:"updated_at" bson:"updated_at"`
}

// NewSession creates an idle session for a user.
func NewSession(userID, chatID int64) *Session {
	return &Session{
		UserID:    userID,
		ChatID:    chatID,
		Fields:    make(map[string]string),
		UpdatedAt: time.Now(),
	}
}

// Idle reports whether no flow is in progress.
func (s *Session) Idle() bool {
	return s.ActiveFlow == ""
}

// Field returns a committed field value, or "" if not yet collected.
func (s *Session) Field(name string) string {
	return s.Fields[name]
}

// SetField commits a collected value.
func (s *Session) SetField(name, value string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	s.Fields[name] = value
}

// Reset returns the session to idle, dropping the active flow and all
// collected fields.
func (s *Session) Reset() {
	s.ActiveFlow = ""
	s.Step = ""
	s.Fields = make(map[string]string)
	s.UpdatedAt = time.Now()
}
