package story

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aicraft/storycraft/internal/providers"
)

// sceneExcerptLimit bounds how much story text seeds the scene illustration.
const sceneExcerptLimit = 300

const scenePromptPrefix = "illustration of: "

var ErrEmptyPrompt = errors.New("prompt is required")

type (
	// Pipeline turns one user prompt into a story plus two derived
	// illustration calls. The text step must succeed before either image
	// branch starts; the branches then run concurrently and fail
	// independently.
	Pipeline struct {
		completion providers.CompletionClient
		images     providers.ImageClient
		strategy   PromptStrategy
		logger     zerolog.Logger
	}

	// ImageOutcome is a single branch's result slot.
	ImageOutcome struct {
		ImageURL string
		Err      error
	}

	// Result hands back the story text immediately; each image branch
	// delivers exactly one ImageOutcome on its own channel.
	Result struct {
		Text      string
		Usage     *providers.Usage
		Scene     <-chan ImageOutcome
		Character <-chan ImageOutcome
	}
)

func NewPipeline(completion providers.CompletionClient, images providers.ImageClient, strategy PromptStrategy, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		completion: completion,
		images:     images,
		strategy:   strategy,
		logger:     logger.With().Str("component", "story_pipeline").Logger(),
	}
}

// Run executes the three-step pipeline. It returns once the story text is
// available; the two image branches are dispatched at that point and report
// through the Result channels. A branch failure never cancels the other
// branch and never invalidates the returned text.
func (p *Pipeline) Run(ctx context.Context, prompt string, model Model) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	completion, err := p.completion.Complete(ctx, prompt, model.upstream())
	if err != nil {
		return nil, err
	}

	scene := make(chan ImageOutcome, 1)
	character := make(chan ImageOutcome, 1)

	// The branches outlive the caller's interest in ctx; detach them from
	// its cancellation so an early return cannot abort an in-flight call.
	branchCtx := context.WithoutCancel(ctx)

	go p.generate(branchCtx, "scene", scenePrompt(completion.Text), scene)
	go p.generate(branchCtx, "character", p.strategy.CharacterPrompt(completion.Text), character)

	return &Result{
		Text:      completion.Text,
		Usage:     completion.Usage,
		Scene:     scene,
		Character: character,
	}, nil
}

func (p *Pipeline) generate(ctx context.Context, branch, prompt string, out chan<- ImageOutcome) {
	url, err := p.images.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn().Err(err).Str("branch", branch).Msg("Image branch failed")
	}
	out <- ImageOutcome{ImageURL: url, Err: err}
}

// scenePrompt frames a bounded prefix of the story text as an illustration
// request.
func scenePrompt(storyText string) string {
	runes := []rune(storyText)
	if len(runes) > sceneExcerptLimit {
		runes = runes[:sceneExcerptLimit]
	}
	return scenePromptPrefix + string(runes)
}
