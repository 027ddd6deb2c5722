package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rdmitr/agentchat/internal/chat"
)

// Appender is the slice of the repository the tracker needs: on completion it
// appends a system message into the originating session.
type Appender interface {
	AppendMessage(id int64, m chat.Message) bool
}

type uploadResponse struct {
	FileName  string `json:"fileName"`
	FileType  string `json:"fileType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Tracker drives the upload state machine from the file transfer endpoint's
// progress. It runs independently of the message pipeline; its only effect on
// a session is the completion message. File content is never stored in a
// session, only the name and size metadata.
type Tracker struct {
	httpClient *http.Client
	baseURL    string
	repo       Appender

	mu         sync.Mutex
	onProgress func(Task)
}

// NewTracker creates a new Tracker instance
func NewTracker(baseURL string, timeout time.Duration, repo Appender) *Tracker {
	return &Tracker{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		repo:       repo,
	}
}

// OnProgress registers an observer called with a copy of the task after every
// state change.
func (t *Tracker) OnProgress(fn func(Task)) {
	t.mu.Lock()
	t.onProgress = fn
	t.mu.Unlock()
}

func (t *Tracker) emit(task *Task) {
	t.mu.Lock()
	fn := t.onProgress
	t.mu.Unlock()
	if fn != nil {
		fn(*task)
	}
}

// Upload streams the file to the transfer endpoint, reporting progress along
// the way. On success the task completes and the session receives a system
// message; on any failure the task fails and a NetworkError is returned. No
// automatic retry.
func (t *Tracker) Upload(ctx context.Context, sessionID int64, path string) (*Task, error) {
	task := &Task{SessionID: sessionID, FileName: filepath.Base(path), State: StateIdle}

	payload, err := os.ReadFile(path)
	if err != nil {
		task.fail()
		t.emit(task)
		return task, &chat.ValidationError{Field: "path", Reason: err.Error()}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", task.FileName)
	if err == nil {
		_, err = part.Write(payload)
	}
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		task.fail()
		t.emit(task)
		return task, fmt.Errorf("failed to build multipart payload: %w", err)
	}

	task.start()
	t.emit(task)

	total := int64(body.Len())
	reader := &progressReader{
		r:     &body,
		total: total,
		observe: func(loaded, total int64) {
			task.advance(percent(loaded, total))
			t.emit(task)
		},
	}

	uploadPath := t.baseURL + "/api/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadPath, reader)
	if err != nil {
		task.fail()
		t.emit(task)
		return task, &chat.NetworkError{URL: uploadPath, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	res, err := t.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to send upload request", "error", err)
		task.fail()
		t.emit(task)
		return task, &chat.NetworkError{URL: uploadPath, Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		task.fail()
		t.emit(task)
		return task, &chat.NetworkError{URL: uploadPath, StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		slog.Error("Upload rejected", "status", res.StatusCode)
		task.fail()
		t.emit(task)
		return task, &chat.NetworkError{
			URL:        uploadPath,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("upload failed: %s", string(resBody)),
		}
	}

	info := uploadResponse{}
	if err := json.Unmarshal(resBody, &info); err != nil {
		task.fail()
		t.emit(task)
		return task, &chat.NetworkError{URL: uploadPath, StatusCode: res.StatusCode, Err: err}
	}
	if info.FileName == "" {
		info.FileName = task.FileName
	}
	if info.SizeBytes == 0 {
		info.SizeBytes = int64(len(payload))
	}

	if err := task.complete(); err != nil {
		task.fail()
		t.emit(task)
		return task, &chat.NetworkError{URL: uploadPath, Err: err}
	}
	t.emit(task)

	t.repo.AppendMessage(sessionID, chat.Message{
		Role:      chat.RoleSystem,
		Content:   fmt.Sprintf("Uploaded file: %s", info.FileName),
		Kind:      chat.KindFile,
		FileType:  info.FileType,
		SizeBytes: info.SizeBytes,
	})

	slog.Debug("upload complete",
		slog.Int64("session_id", sessionID),
		slog.String("file", info.FileName),
		slog.Int64("size", info.SizeBytes),
	)
	return task, nil
}

func percent(loaded, total int64) int {
	if total <= 0 {
		return 100
	}
	return int(loaded * 100 / total)
}

// progressReader reports cumulative bytes read to the observer, mirroring the
// transfer endpoint's {loadedBytes, totalBytes} events.
type progressReader struct {
	r       io.Reader
	loaded  int64
	total   int64
	observe func(loaded, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.observe(p.loaded, p.total)
	}
	return n, err
}
