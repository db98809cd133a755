// Package providers holds the HTTP adapters for the external generation
// services: a text-completion provider (Groq) and an image-synthesis
// provider (Hugging Face). Both enforce a bounded request timeout and retry
// transient failures with backoff; anything else is surfaced to the caller
// as a typed error.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	// ErrUnavailable means the provider could not be reached at the network
	// level (timeout, DNS, connection refused).
	ErrUnavailable = errors.New("provider unreachable")

	// ErrNotConfigured means the provider's API key is missing. The key is
	// optional at startup, so this surfaces on first use of the route.
	ErrNotConfigured = errors.New("provider API key not configured")

	// ErrMalformedResponse means the provider answered 2xx but the payload
	// lacks the expected fields.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// ProviderError is a non-success HTTP status from a provider.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Message)
}

type (
	// CompletionClient sends a prompt to the text-generation provider.
	CompletionClient interface {
		Complete(ctx context.Context, prompt, model string) (*Completion, error)
	}

	// ImageClient sends a prompt to the image-generation provider and
	// returns an image reference (data URI).
	ImageClient interface {
		Generate(ctx context.Context, prompt string) (string, error)
	}

	// Completion is the text result of a completion call.
	Completion struct {
		Text  string
		Usage *Usage
	}

	// Usage carries the provider's token accounting, when present.
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	}
)

const (
	defaultMaxRetries = 2
	defaultRetryBase  = 500 * time.Millisecond
)

func backoffPolicy(maxRetries uint64, base time.Duration) retry.Backoff {
	return retry.WithMaxRetries(maxRetries, retry.NewFibonacci(base))
}

// transient statuses are worth a retry; everything else fails immediately.
func transient(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// providerErrorFrom drains the response body into a ProviderError. It first
// tries the OpenAI-style {"error":{"message":...}} shape, then falls back to
// the raw body text.
func providerErrorFrom(resp *http.Response) *ProviderError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	return &ProviderError{Status: resp.StatusCode, Message: message}
}
