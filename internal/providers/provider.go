package providers

import (
	"context"
	"fmt"
)

// Kind identifies a supported provider backend. The set is closed: each kind
// carries its own required credential, checked by its constructor.
type Kind string

const (
	KindAnthropic Kind = "anthropic"
	KindOpenAI    Kind = "openai"
	KindGemini    Kind = "gemini"
	KindOllama    Kind = "ollama"
)

// ReviewRequest contains the data sent to a model for review.
type ReviewRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// ReviewResponse contains the raw model response.
type ReviewResponse struct {
	Content    string
	TokensUsed int
}

// Reviewer is the provider abstraction.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
}

// New creates a provider for the given kind.
func New(kind Kind, model string) (Reviewer, error) {
	switch kind {
	case KindAnthropic:
		return NewAnthropic(model)
	case KindOpenAI:
		return NewOpenAI(model)
	case KindGemini, "google":
		return NewGemini(model)
	case KindOllama, "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", kind)
	}
}
