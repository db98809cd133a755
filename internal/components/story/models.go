package story

import "github.com/aicraft/storycraft/internal/providers"

type (
	// Model selects the completion model tier.
	Model string

	GenerateTextRequest struct {
		Prompt string `json:"prompt"`
		Model  Model  `json:"model,omitempty"`
	}

	GenerateTextResponse struct {
		Text  string           `json:"text"`
		Usage *providers.Usage `json:"usage,omitempty"`
	}

	GenerateImageRequest struct {
		Prompt string `json:"prompt"`
	}

	GenerateImageResponse struct {
		ImageURL string `json:"image_url"`
	}

	// ImageReport is the per-branch outcome in a full pipeline response.
	// A failed branch carries an error message instead of a URL; it never
	// fails the story itself.
	ImageReport struct {
		ImageURL string `json:"image_url,omitempty"`
		Error    string `json:"error,omitempty"`
	}

	StoryResponse struct {
		Text           string           `json:"text"`
		Usage          *providers.Usage `json:"usage,omitempty"`
		SceneImage     ImageReport      `json:"scene_image"`
		CharacterImage ImageReport      `json:"character_image"`
	}
)

const (
	ModelFast     Model = "fast"
	ModelPowerful Model = "powerful"
)

// upstream maps the model tier to the provider's model name. Unknown values
// fall back to the fast tier.
func (m Model) upstream() string {
	if m == ModelPowerful {
		return "llama3-70b-8192"
	}
	return providers.DefaultModel
}
