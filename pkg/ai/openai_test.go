package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*OpenAIClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewOpenAIClient(OpenAIConfig{
		BaseURL: server.URL + "/v1",
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: timeout,
		Logger:  zerolog.New(io.Discard),
	})
	return client, server
}

func simpleRequest() CompletionRequest {
	return CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "hello"},
		},
		Temperature: 0,
		MaxTokens:   16,
	}
}

func TestCompleteReturnsTrimmedText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  generated text  "}}]}`))
	}, time.Second)

	output, err := client.Complete(context.Background(), simpleRequest())
	require.NoError(t, err)
	require.Equal(t, "generated text", output)
}

func TestCompleteNotConfigured(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	client := NewOpenAIClient(OpenAIConfig{
		BaseURL: server.URL + "/v1",
		Logger:  zerolog.New(io.Discard),
	})

	_, err := client.Complete(context.Background(), simpleRequest())
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Equal(t, int32(0), calls.Load())
}

func TestCompleteUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}, time.Second)

	_, err := client.Complete(context.Background(), simpleRequest())
	require.ErrorIs(t, err, ErrUpstream)
	require.NotErrorIs(t, err, ErrUpstreamTimeout)
}

func TestCompleteUpstreamTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"late"}}]}`))
	}, 50*time.Millisecond)

	_, err := client.Complete(context.Background(), simpleRequest())
	require.ErrorIs(t, err, ErrUpstreamTimeout)
}

func TestCompleteNoChoices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}, time.Second)

	_, err := client.Complete(context.Background(), simpleRequest())
	require.ErrorIs(t, err, ErrUpstream)
}
