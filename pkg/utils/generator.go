package utils

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// GenerationOptions are the per-call knobs forwarded to the text generation provider.
type GenerationOptions struct {
	Model       string
	Temperature float32
	Stream      bool
}

// TextGeneratorInterface produces text for a prompt as a lazy sequence of fragments.
// Every call returns a fresh sequence; ranging over it performs the request.
// In non-streaming mode the sequence yields the whole text as a single fragment.
type TextGeneratorInterface interface {
	Generate(ctx context.Context, prompt string, opts GenerationOptions) iter.Seq2[string, error]
	Provider() string
	Close() error
}

// NewTextGenerator Factory function to create either OpenAI or Gemini generator based on config
func NewTextGenerator(provider, apiKey string, cfg GeneratorConfig) (TextGeneratorInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIGenerator(apiKey, cfg), nil
	case "gemini":
		return NewGeminiGenerator(apiKey, cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// Collect drains a fragment sequence into one string. Fragments received before
// a failure are returned alongside the error.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var sb strings.Builder
	for fragment, err := range seq {
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}
