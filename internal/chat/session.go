package chat

import "time"

// DefaultColorTag is the style key assigned to newly created sessions.
const DefaultColorTag = "gray"

// Session represents a chat session. The session repository owns every
// Session instance; other components operate on copies or ids.
type Session struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	ColorTag  string    `json:"colorTag"`
	Messages  []Message `json:"messages"`
}

// NewSession creates a new Session instance
func NewSession(id int64, title string) *Session {
	return &Session{
		ID:        id,
		Title:     title,
		CreatedAt: time.Now(),
		ColorTag:  DefaultColorTag,
		Messages:  []Message{},
	}
}

// Append adds a message to the end of the session history.
func (s *Session) Append(m Message) {
	s.Messages = append(s.Messages, m)
}

// Clone returns a deep copy of the session, safe to hand outside the
// repository lock.
func (s *Session) Clone() *Session {
	c := *s
	c.Messages = make([]Message, len(s.Messages))
	copy(c.Messages, s.Messages)
	return &c
}
