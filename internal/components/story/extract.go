package story

import "regexp"

// FallbackCharacterPrompt is used when no name-like token is found.
const FallbackCharacterPrompt = "Fantasy character portrait"

// PromptStrategy derives the character-illustration prompt from generated
// story text. It is a replaceable policy: the pipeline only ever calls this
// one method.
type PromptStrategy interface {
	CharacterPrompt(storyText string) string
}

// regexStrategy picks the first capitalized word or two-word capitalized
// sequence, optionally preceded by "named". This is a heuristic, not a name
// detector: any capitalized token matches, including words that merely start
// a sentence.
type regexStrategy struct{}

var namePattern = regexp.MustCompile(`(?:named\s)?([A-Z][a-z]+\s[A-Z][a-z]+|[A-Z][a-z]+)`)

func NewRegexStrategy() PromptStrategy {
	return regexStrategy{}
}

func (regexStrategy) CharacterPrompt(storyText string) string {
	match := namePattern.FindStringSubmatch(storyText)
	if match == nil {
		return FallbackCharacterPrompt
	}
	return "A character illustration of " + match[1]
}
