package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rdmitr/agentchat/internal/chat"
)

// colorTags maps a session's opaque color tag to a terminal color. Unknown
// tags fall back to the default gray.
var colorTags = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("4"),
	"green":  lipgloss.Color("2"),
	"purple": lipgloss.Color("5"),
	"gray":   lipgloss.Color("8"),
}

var (
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	agentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	systemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func roleStyle(role chat.Role) lipgloss.Style {
	switch role {
	case chat.RoleUser:
		return userStyle
	case chat.RoleAgent:
		return agentStyle
	default:
		return systemStyle
	}
}

func renderMessage(msg chat.Message) string {
	label := roleStyle(msg.Role).Render(strings.ToUpper(string(msg.Role)) + ":")
	switch msg.Kind {
	case chat.KindCode:
		return fmt.Sprintf("%s\n```%s\n%s\n```", label, msg.Language, msg.Content)
	case chat.KindError:
		return fmt.Sprintf("%s %s", label, errorStyle.Render(msg.Content))
	default:
		return fmt.Sprintf("%s %s", label, msg.Content)
	}
}

func renderSessionLine(sess chat.Session, active bool) string {
	color, ok := colorTags[sess.ColorTag]
	if !ok {
		color = colorTags[chat.DefaultColorTag]
	}
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	marker := " "
	if active {
		marker = ">"
	}
	return fmt.Sprintf("%s %s [%d] %s - %s (%d messages)",
		marker, dot, sess.ID, sess.Title, sess.CreatedAt.Format("Jan 2, 15:04"), len(sess.Messages))
}
