package story

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/aicraft/storycraft/internal/providers"
	"github.com/aicraft/storycraft/internal/shared/config"
	"github.com/aicraft/storycraft/internal/shared/httpx"
)

type (
	Router struct {
		pipeline *Pipeline
		images   providers.ImageClient
		details  bool
	}
)

func NewRouter(pipeline *Pipeline, images providers.ImageClient, cfg *config.Config) chi.Router {
	router := &Router{pipeline: pipeline, images: images, details: !cfg.IsEnvProd()}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/text", r.GenerateText)
	router.Post("/image", r.GenerateImage)
	router.Post("/story", r.GenerateStory)
	return router
}

// GenerateText runs only the completion step, for callers that drive the
// image round-trips themselves.
func (r *Router) GenerateText(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body GenerateTextRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeValidation, "invalid request body", err), r.details)
		return
	}
	if strings.TrimSpace(body.Prompt) == "" {
		httpx.WriteError(w, req, httpx.E(httpx.CodeValidation, "prompt is required"), r.details)
		return
	}

	completion, err := r.pipeline.completion.Complete(ctx, body.Prompt, body.Model.upstream())
	if err != nil {
		logger.Error().Err(err).Msg("Text generation failed")
		httpx.WriteError(w, req, textError(err), r.details)
		return
	}

	httpx.WriteJSON(w, req, http.StatusOK, GenerateTextResponse{
		Text:  completion.Text,
		Usage: completion.Usage,
	})
}

// GenerateImage proxies a single image-synthesis call.
func (r *Router) GenerateImage(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body GenerateImageRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeValidation, "invalid request body", err), r.details)
		return
	}
	if strings.TrimSpace(body.Prompt) == "" {
		httpx.WriteError(w, req, httpx.E(httpx.CodeValidation, "prompt is required"), r.details)
		return
	}

	imageURL, err := r.images.Generate(ctx, body.Prompt)
	if err != nil {
		logger.Error().Err(err).Msg("Image generation failed")
		httpx.WriteError(w, req, imageError(err), r.details)
		return
	}

	httpx.WriteJSON(w, req, http.StatusOK, GenerateImageResponse{ImageURL: imageURL})
}

// GenerateStory runs the full pipeline and gathers both image branches into
// one response. Branch failures are reported per-branch; only a failure of
// the text step fails the request.
func (r *Router) GenerateStory(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body GenerateTextRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeValidation, "invalid request body", err), r.details)
		return
	}

	result, err := r.pipeline.Run(ctx, body.Prompt, body.Model)
	if err != nil {
		if errors.Is(err, ErrEmptyPrompt) {
			httpx.WriteError(w, req, httpx.E(httpx.CodeValidation, "prompt is required"), r.details)
			return
		}
		logger.Error().Err(err).Msg("Story pipeline failed")
		httpx.WriteError(w, req, textError(err), r.details)
		return
	}

	scene := <-result.Scene
	character := <-result.Character

	httpx.WriteJSON(w, req, http.StatusOK, StoryResponse{
		Text:           result.Text,
		Usage:          result.Usage,
		SceneImage:     report(scene),
		CharacterImage: report(character),
	})
}

func report(outcome ImageOutcome) ImageReport {
	if outcome.Err != nil {
		return ImageReport{Error: imageError(outcome.Err).Message}
	}
	return ImageReport{ImageURL: outcome.ImageURL}
}

// textError maps a completion failure onto the taxonomy.
func textError(err error) *httpx.Error {
	switch {
	case errors.Is(err, providers.ErrNotConfigured):
		return httpx.Wrap(httpx.CodeConfiguration, "text provider not configured", err)
	case errors.Is(err, providers.ErrUnavailable):
		return httpx.Wrap(httpx.CodeUnavailable, "text provider unreachable", err)
	default:
		return httpx.Wrap(httpx.CodeUpstreamText, "text generation failed", err)
	}
}

// imageError maps an image failure onto the taxonomy.
func imageError(err error) *httpx.Error {
	switch {
	case errors.Is(err, providers.ErrNotConfigured):
		return httpx.Wrap(httpx.CodeConfiguration, "image provider not configured", err)
	case errors.Is(err, providers.ErrUnavailable):
		return httpx.Wrap(httpx.CodeUnavailable, "image provider unreachable", err)
	default:
		return httpx.Wrap(httpx.CodeUpstreamImage, "image generation failed", err)
	}
}
