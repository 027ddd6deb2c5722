package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdmitr/agentchat/internal/chat"
	"github.com/rdmitr/agentchat/internal/upload"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat REPL",
	Long: `Open an interactive prompt against the active session. Plain input is sent
to the inference endpoint; slash commands manage sessions:

  /sessions              list sessions
  /new [title]           create a session and switch to it
  /select <id>           switch the active session
  /rename <id> <title>   rename a session
  /delete <id>           delete a session
  /upload <path>         upload a file into the active session
  /agent <name>          pick the inference agent
  /task <name>           pick the task
  /log on|off            toggle chat logging
  /quit                  exit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a := openApp(ctx)
	defer a.close()

	a.tracker.OnProgress(func(task upload.Task) {
		if task.State == upload.StateInProgress {
			fmt.Printf("\ruploading %s: %d%%", task.FileName, task.Percent)
		}
	})

	if sess, ok := a.manager.Active(); ok {
		fmt.Println(titleStyle.Render(sess.Title))
		for _, msg := range sess.Messages {
			fmt.Println(renderMessage(msg))
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := a.runCommand(cmd, line); quit {
				break
			}
			continue
		}
		a.send(cmd, line)
	}
	return scanner.Err()
}

func (a *app) send(cmd *cobra.Command, content string) {
	sess, ok := a.manager.Active()
	if !ok {
		fmt.Println(errorStyle.Render("no active session; create one with /new"))
		return
	}

	agentID, taskID := a.registry.Selected()
	res, err := a.pipeline.Send(cmd.Context(), sess.ID, agentID, taskID, content)
	if err != nil {
		fmt.Println(errorStyle.Render("error: " + err.Error()))
		return
	}

	if res.Logged {
		fmt.Println(renderMessage(chat.NewTextMessage(chat.RoleAgent, res.Reply)))
	} else {
		// Logging off: the reply exists only in this one-shot notice.
		fmt.Println(noticeStyle.Render("chat logging disabled, reply: " + res.Reply))
	}
}

// runCommand handles one slash command; returns true on /quit.
func (a *app) runCommand(cmd *cobra.Command, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/sessions":
		activeID, _ := a.repo.ActiveID()
		for _, sess := range a.manager.List() {
			fmt.Println(renderSessionLine(sess, sess.ID == activeID))
		}

	case "/new":
		title := strings.TrimSpace(strings.TrimPrefix(line, "/new"))
		sess := a.manager.Create(title)
		fmt.Printf("created session %d: %s\n", sess.ID, sess.Title)

	case "/select":
		id, ok := parseID(fields)
		if !ok {
			fmt.Println(errorStyle.Render("usage: /select <id>"))
			break
		}
		if err := a.manager.Select(id); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			break
		}
		if sess, ok := a.manager.Active(); ok {
			fmt.Println(titleStyle.Render(sess.Title))
			for _, msg := range sess.Messages {
				fmt.Println(renderMessage(msg))
			}
		}

	case "/rename":
		id, ok := parseID(fields)
		if !ok || len(fields) < 3 {
			fmt.Println(errorStyle.Render("usage: /rename <id> <title>"))
			break
		}
		a.manager.Rename(id, strings.Join(fields[2:], " "))

	case "/delete":
		id, ok := parseID(fields)
		if !ok {
			fmt.Println(errorStyle.Render("usage: /delete <id>"))
			break
		}
		if err := a.manager.Delete(id); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
		}

	case "/upload":
		if len(fields) < 2 {
			fmt.Println(errorStyle.Render("usage: /upload <path>"))
			break
		}
		sess, ok := a.manager.Active()
		if !ok {
			fmt.Println(errorStyle.Render("no active session"))
			break
		}
		task, err := a.tracker.Upload(cmd.Context(), sess.ID, fields[1])
		fmt.Println()
		if err != nil {
			fmt.Println(errorStyle.Render("upload failed: " + err.Error()))
			break
		}
		fmt.Printf("upload complete: %s\n", task.FileName)

	case "/agent":
		if len(fields) < 2 {
			for _, name := range a.registry.Agents() {
				fmt.Println("  " + name)
			}
			break
		}
		if err := a.registry.SelectAgent(fields[1]); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
		}

	case "/task":
		if len(fields) < 2 {
			for _, name := range a.registry.Tasks() {
				fmt.Println("  " + name)
			}
			break
		}
		if err := a.registry.SelectTask(strings.Join(fields[1:], " ")); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
		}

	case "/log":
		if len(fields) < 2 {
			fmt.Printf("chat logging: %v\n", a.pipeline.Logging())
			break
		}
		a.pipeline.SetLogging(fields[1] == "on")

	default:
		fmt.Println(errorStyle.Render("unknown command: " + fields[0]))
	}
	return false
}

func parseID(fields []string) (int64, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
