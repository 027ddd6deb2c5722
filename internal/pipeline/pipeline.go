package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rdmitr/agentchat/internal/chat"
	"github.com/rdmitr/agentchat/internal/repository"
)

// contextWindow is the fixed number of stored messages sent alongside each
// new message. Not configurable: it bounds request size regardless of how
// long the history grows.
const contextWindow = 4

// Inference is the endpoint contract the pipeline dispatches through.
type Inference interface {
	Completion(ctx context.Context, token, agentID, taskID string, messages []chat.Message) (string, error)
}

// Result reports the outcome of one send. When Logged is false the reply was
// not appended to the session history and Reply is the only place it exists.
type Result struct {
	Token  string
	Reply  string
	Logged bool
}

// Pipeline validates user input, builds the bounded context, dispatches to
// the inference endpoint and applies the reply back into the repository.
// Each dispatch carries a fresh request token, so a reply always lands in the
// session that originated it, even if the user switched sessions meanwhile.
type Pipeline struct {
	repo      *repository.Repository
	inference Inference

	mu      sync.Mutex
	logging bool
}

// New creates a new Pipeline instance
func New(repo *repository.Repository, inference Inference, logging bool) *Pipeline {
	return &Pipeline{repo: repo, inference: inference, logging: logging}
}

// SetLogging toggles whether agent replies are appended to session history.
// The flag is process-wide and affects only the apply step, never dispatch.
func (p *Pipeline) SetLogging(enabled bool) {
	p.mu.Lock()
	p.logging = enabled
	p.mu.Unlock()
}

// Logging reports the current chat-logging flag.
func (p *Pipeline) Logging() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.logging
}

// AppendUserMessage validates and appends a user message to the session.
func (p *Pipeline) AppendUserMessage(sessionID int64, content string) (*chat.Session, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &chat.ValidationError{Field: "content", Reason: "message content is empty"}
	}
	if !p.repo.AppendMessage(sessionID, chat.NewTextMessage(chat.RoleUser, content)) {
		return nil, &chat.ValidationError{Field: "sessionId", Reason: fmt.Sprintf("unknown session %d", sessionID)}
	}
	sess, _ := p.repo.Get(sessionID)
	return sess, nil
}

// BuildContext returns the sliding window sent to the inference endpoint: the
// last contextWindow messages already in the session, followed by one
// synthetic user message holding newContent.
func BuildContext(sess *chat.Session, newContent string) []chat.Message {
	start := len(sess.Messages) - contextWindow
	if start < 0 {
		start = 0
	}
	window := make([]chat.Message, 0, contextWindow+1)
	window = append(window, sess.Messages[start:]...)
	window = append(window, chat.NewTextMessage(chat.RoleUser, newContent))
	return window
}

// Send runs the whole pipeline for one user message: validate, snapshot the
// context before the append, append the user message, dispatch, apply the
// reply. On endpoint failure the user's message stays in the history, no
// agent message is fabricated, and the NetworkError is returned as-is.
func (p *Pipeline) Send(ctx context.Context, sessionID int64, agentID, taskID, content string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &chat.ValidationError{Field: "content", Reason: "message content is empty"}
	}
	sess, ok := p.repo.Get(sessionID)
	if !ok {
		return nil, &chat.ValidationError{Field: "sessionId", Reason: fmt.Sprintf("unknown session %d", sessionID)}
	}

	window := BuildContext(sess, content)
	p.repo.AppendMessage(sessionID, chat.NewTextMessage(chat.RoleUser, content))

	token := uuid.NewString()
	slog.Debug("dispatching to inference endpoint",
		slog.String("token", token),
		slog.Int64("session_id", sessionID),
		slog.Int("context_len", len(window)),
	)

	reply, err := p.inference.Completion(ctx, token, agentID, taskID, window)
	if err != nil {
		slog.Error("Failed to get inference reply", "token", token, "error", err)
		return nil, err
	}

	return p.ApplyReply(sessionID, token, reply), nil
}

// ApplyReply records the agent reply according to the chat-logging flag:
// appended to the originating session when logging is on, surfaced only in
// the Result when off.
func (p *Pipeline) ApplyReply(sessionID int64, token, reply string) *Result {
	res := &Result{Token: token, Reply: reply}
	if !p.Logging() {
		slog.Debug("chat logging disabled, reply not stored", "token", token)
		return res
	}
	res.Logged = p.repo.AppendMessage(sessionID, chat.NewTextMessage(chat.RoleAgent, reply))
	return res
}
