package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdmitr/agentchat/internal/chat"
)

func TestCompletion_Success(t *testing.T) {
	var gotReq inferenceRequest
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, JSONContentType, r.Header.Get("Content-Type"))
		gotToken = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", JSONContentType)
		_, _ = w.Write([]byte(`{"reply":"hi there"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	window := []chat.Message{
		chat.NewTextMessage(chat.RoleUser, "earlier"),
		chat.NewTextMessage(chat.RoleAgent, "reply"),
		chat.NewTextMessage(chat.RoleUser, "hello"),
	}

	reply, err := c.Completion(context.Background(), "token-123", "gpt2", "Summarization", window)
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)

	assert.Equal(t, "token-123", gotToken)
	assert.Equal(t, "gpt2", gotReq.AgentID)
	assert.Equal(t, "Summarization", gotReq.TaskID)
	require.Len(t, gotReq.Messages, 3)
	assert.Equal(t, "hello", gotReq.Messages[2].Content)
}

func TestCompletion_ApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"code":502,"message":"model unavailable"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	_, err := c.Completion(context.Background(), "t", "gpt2", "", nil)
	require.Error(t, err)

	var netErr *chat.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusBadGateway, netErr.StatusCode)
	assert.Contains(t, netErr.Error(), "model unavailable")
}

func TestCompletion_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	_, err := c.Completion(context.Background(), "t", "", "", nil)

	var netErr *chat.NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestCompletion_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c := NewClient(server.URL, time.Second)
	_, err := c.Completion(context.Background(), "t", "", "", nil)

	var netErr *chat.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode, "no response means no status code")
}

func TestCompletion_TimeoutBecomesNetworkError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	c := NewClient(server.URL, 50*time.Millisecond)
	_, err := c.Completion(context.Background(), "t", "", "", nil)

	var netErr *chat.NetworkError
	require.True(t, errors.As(err, &netErr), "a hung endpoint resolves to NetworkError, not a stuck pending state")
}
