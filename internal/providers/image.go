package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/aicraft/storycraft/internal/shared/config"
)

// Image payloads above this size are rejected rather than buffered.
const maxImageBytes = 16 << 20

type (
	hfClient struct {
		client     *http.Client
		url        string
		apiKey     string
		logger     zerolog.Logger
		maxRetries uint64
		retryBase  time.Duration
	}

	imageRequest struct {
		Inputs string `json:"inputs"`
	}
)

func NewImageClient(cfg *config.Config, logger zerolog.Logger) ImageClient {
	return &hfClient{
		client:     &http.Client{Timeout: cfg.ProviderTimeout},
		url:        cfg.HuggingFaceURL,
		apiKey:     cfg.HuggingFaceToken,
		logger:     logger.With().Str("component", "image_client").Logger(),
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
	}
}

// Generate returns the synthesized image as a PNG data URI.
func (c *hfClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(imageRequest{Inputs: prompt})
	if err != nil {
		return "", err
	}

	c.logger.Debug().Int("prompt_bytes", len(prompt)).Msg("Image request")

	var raw []byte
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

		raw, err = io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
		return err
	})
	if err != nil {
		return "", err
	}

	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty image payload", ErrMalformedResponse)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw), nil
}
