package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		APIKey:    "sk-test",
		BaseURL:   srv.URL + "/",
		Model:     "openai/gpt-3.5-turbo",
		MaxTokens: 600,
		Timeout:   timeout,
	})
}

func writeCompletion(w http.ResponseWriter, choices ...string) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type choice struct {
		Index        int     `json:"index"`
		FinishReason string  `json:"finish_reason"`
		Message      message `json:"message"`
	}
	out := struct {
		ID      string   `json:"id"`
		Object  string   `json:"object"`
		Created int64    `json:"created"`
		Model   string   `json:"model"`
		Choices []choice `json:"choices"`
	}{ID: "chatcmpl-1", Object: "chat.completion", Created: 1, Model: "openai/gpt-3.5-turbo", Choices: []choice{}}
	for i, c := range choices {
		out.Choices = append(out.Choices, choice{Index: i, FinishReason: "stop", Message: message{Role: "assistant", Content: c}})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func TestComplete_SendsPromptAndReturnsContent(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int64  `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var auth, path string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeCompletion(w, `{"about":"hello"}`)
	}, 5*time.Second)

	out, err := c.Complete(context.Background(), "write a site")
	require.NoError(t, err)

	assert.Equal(t, `{"about":"hello"}`, out)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "openai/gpt-3.5-turbo", got.Model)
	assert.Equal(t, int64(600), got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "write a site", got.Messages[0].Content)
}

func TestComplete_NoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w)
	}, 5*time.Second)

	_, err := c.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestComplete_UpstreamError(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}, 5*time.Second)

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "no retries by default")
}

func TestComplete_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	t.Cleanup(func() { close(release) })

	start := time.Now()
	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
