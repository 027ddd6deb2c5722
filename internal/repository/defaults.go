package repository

import (
	"fmt"
	"time"

	"github.com/rdmitr/agentchat/internal/chat"
)

func defaultTitle(id int64) string {
	return fmt.Sprintf("New Chat %d", id)
}

// defaultSessions is the fixed set installed on first run, when the durable
// store holds nothing yet.
func defaultSessions() []chat.Session {
	seeded := time.Date(2025, time.February, 15, 1, 0, 0, 0, time.UTC)
	return []chat.Session{
		{
			ID:        1,
			Title:     "Python Code Help",
			CreatedAt: seeded,
			ColorTag:  "blue",
			Messages: []chat.Message{
				chat.NewTextMessage(chat.RoleUser, "How can I read a file in Python?"),
				chat.NewTextMessage(chat.RoleAgent, "Use the built-in open function..."),
			},
		},
		{
			ID:        2,
			Title:     "Document Analysis",
			CreatedAt: seeded,
			ColorTag:  "green",
			Messages: []chat.Message{
				chat.NewTextMessage(chat.RoleUser, "Here is a PDF, please summarize."),
				chat.NewTextMessage(chat.RoleAgent, "Summary: ..."),
			},
		},
		{
			ID:        3,
			Title:     "Creative Story",
			CreatedAt: seeded,
			ColorTag:  "purple",
			Messages: []chat.Message{
				chat.NewTextMessage(chat.RoleUser, "Write a short fantasy tale."),
				chat.NewTextMessage(chat.RoleAgent, "Once upon a time..."),
			},
		},
	}
}
