package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/rdmitr/agentchat/internal/chat"
)

// MarkdownExporter exports a session in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(sess *chat.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", sess.Title)
	_, _ = fmt.Fprintf(w, "**Session:** %d  \n", sess.ID)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", sess.CreatedAt.Format("Jan 2, 2006 15:04"))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(sess.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range sess.Messages {
		switch msg.Kind {
		case chat.KindCode:
			_, _ = fmt.Fprintf(w, "**%s:**\n\n```%s\n%s\n```\n\n", strings.ToUpper(string(msg.Role)), msg.Language, msg.Content)
		default:
			_, _ = fmt.Fprintf(w, "**%s:** %s\n\n", strings.ToUpper(string(msg.Role)), msg.Content)
		}
		if i < len(sess.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
