package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHFClient(url string) *hfClient {
	return &hfClient{
		client:     &http.Client{Timeout: 2 * time.Second},
		url:        url,
		apiKey:     "test-token",
		logger:     zerolog.Nop(),
		maxRetries: 2,
		retryBase:  time.Millisecond,
	}
}

func TestGenerate_Success(t *testing.T) {
	pngBytes := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

	var gotReq imageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write(pngBytes)
	}))
	defer srv.Close()

	uri, err := newTestHFClient(srv.URL).Generate(context.Background(), "illustration of: a castle")
	require.NoError(t, err)

	assert.Equal(t, "illustration of: a castle", gotReq.Inputs)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, decoded)
}

func TestGenerate_NotConfigured(t *testing.T) {
	c := newTestHFClient("http://example.invalid")
	c.apiKey = ""

	_, err := c.Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerate_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("invalid token"))
	}))
	defer srv.Close()

	_, err := newTestHFClient(srv.URL).Generate(context.Background(), "p")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusForbidden, perr.Status)
	assert.Equal(t, "invalid token", perr.Message)
}

func TestGenerate_EmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := newTestHFClient(srv.URL).Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerate_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestHFClient(srv.URL).Generate(context.Background(), "p")
	require.ErrorIs(t, err, ErrUnavailable)
}
