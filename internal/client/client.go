package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rdmitr/agentchat/internal/chat"
)

const JSONContentType = "application/json"

// ApiErrorResponse is the error body the inference endpoint returns alongside
// a non-2xx status.
type ApiErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client talks to the inference endpoint. Every call is bounded by the
// configured timeout; an unresolved request becomes a NetworkError rather
// than an indefinitely pending send.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new inference endpoint client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Completion sends the bounded context to the inference endpoint and returns
// the reply text. token identifies the request so the caller can tie the
// reply back to the send that produced it. No retry on failure: a single
// failed attempt surfaces the NetworkError.
func (c *Client) Completion(ctx context.Context, token, agentID, taskID string, messages []chat.Message) (string, error) {
	chatPath := c.baseURL + "/api/chat"
	request := inferenceRequest{AgentID: agentID, TaskID: taskID, Messages: messages}
	reqBytes, err := json.Marshal(request)
	if err != nil {
		return "", &chat.NetworkError{URL: chatPath, Err: fmt.Errorf("failed to marshal inference request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, chatPath, bytes.NewBuffer(reqBytes))
	if err != nil {
		slog.Error("Failed to build inference request", "error", err)
		return "", &chat.NetworkError{URL: chatPath, Err: err}
	}
	req.Header.Set("Content-Type", JSONContentType)
	req.Header.Set("Accept", JSONContentType)
	req.Header.Set("X-Request-Id", token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to send inference request", "error", err)
		return "", &chat.NetworkError{URL: chatPath, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.Error("Failed to read inference response body", "error", err)
		return "", &chat.NetworkError{URL: chatPath, StatusCode: res.StatusCode, Err: err}
	}

	if err := handleApiError(chatPath, res, body); err != nil {
		slog.Error("Failed to get completion", "error", err)
		return "", err
	}

	infResp := inferenceResponse{}
	if err := json.Unmarshal(body, &infResp); err != nil {
		slog.Error("Failed to unmarshal inference response body", "error", err)
		return "", &chat.NetworkError{URL: chatPath, StatusCode: res.StatusCode, Err: err}
	}

	return infResp.Reply, nil
}

func handleApiError(url string, res *http.Response, body []byte) error {
	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := ApiErrorResponse{}
		msg := string(body)
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return &chat.NetworkError{
			URL:        url,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("api request failed: %s", msg),
		}
	}
	return nil
}
