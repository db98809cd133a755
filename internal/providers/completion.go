package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/aicraft/storycraft/internal/shared/config"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = "llama3-8b-8192"

type (
	groqClient struct {
		client     *http.Client
		url        string
		apiKey     string
		logger     zerolog.Logger
		maxRetries uint64
		retryBase  time.Duration
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	completionRequest struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		Temperature float64       `json:"temperature"`
		MaxTokens   int           `json:"max_tokens"`
	}

	completionResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage *Usage `json:"usage"`
	}
)

func NewCompletionClient(cfg *config.Config, logger zerolog.Logger) CompletionClient {
	return &groqClient{
		client:     &http.Client{Timeout: cfg.ProviderTimeout},
		url:        cfg.GroqURL,
		apiKey:     cfg.GroqAPIKey,
		logger:     logger.With().Str("component", "completion_client").Logger(),
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
	}
}

func (c *groqClient) Complete(ctx context.Context, prompt, model string) (*Completion, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultModel
	}

	payload, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("model", model).Int("prompt_bytes", len(prompt)).Msg("Completion request")

	var out completionResponse
	err = retry.Do(ctx, backoffPolicy(c.maxRetries, c.retryBase), func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrUnavailable, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			perr := providerErrorFrom(resp)
			if transient(resp.StatusCode) {
				return retry.RetryableError(perr)
			}
			return perr
		}

		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: no completion text", ErrMalformedResponse)
	}

	return &Completion{
		Text:  out.Choices[0].Message.Content,
		Usage: out.Usage,
	}, nil
}
