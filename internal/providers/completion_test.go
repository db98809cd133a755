package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroqClient(url string) *groqClient {
	return &groqClient{
		client:     &http.Client{Timeout: 2 * time.Second},
		url:        url,
		apiKey:     "test-key",
		logger:     zerolog.Nop(),
		maxRetries: 2,
		retryBase:  time.Millisecond,
	}
}

func TestComplete_Success(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "Once upon a time..."}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 240, "total_tokens": 252}
		}`))
	}))
	defer srv.Close()

	c := newTestGroqClient(srv.URL)
	result, err := c.Complete(context.Background(), "a story about a robot", "llama3-70b-8192")
	require.NoError(t, err)

	assert.Equal(t, "Once upon a time...", result.Text)
	require.NotNil(t, result.Usage)
	assert.Equal(t, 252, result.Usage.TotalTokens)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "llama3-70b-8192", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "a story about a robot", gotReq.Messages[0].Content)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.001)
	assert.Equal(t, 1024, gotReq.MaxTokens)
}

func TestComplete_DefaultModel(t *testing.T) {
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"choices": [{"message": {"content": "text"}}]}`))
	}))
	defer srv.Close()

	_, err := newTestGroqClient(srv.URL).Complete(context.Background(), "p", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, gotReq.Model)
}

func TestComplete_NotConfigured(t *testing.T) {
	c := newTestGroqClient("http://example.invalid")
	c.apiKey = ""

	_, err := c.Complete(context.Background(), "p", "")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestComplete_ProviderError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "model not found"}}`))
	}))
	defer srv.Close()

	_, err := newTestGroqClient(srv.URL).Complete(context.Background(), "p", "bogus")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.Status)
	assert.Equal(t, "model not found", perr.Message)
	// 4xx other than 429 is not retried.
	assert.Equal(t, int32(1), calls.Load())
}

func TestComplete_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "recovered"}}]}`))
	}))
	defer srv.Close()

	result, err := newTestGroqClient(srv.URL).Complete(context.Background(), "p", "")
	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestComplete_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := newTestGroqClient(srv.URL).Complete(context.Background(), "p", "")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestComplete_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestGroqClient(srv.URL).Complete(context.Background(), "p", "")
	require.ErrorIs(t, err, ErrUnavailable)
}
