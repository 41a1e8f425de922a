package utils

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiGenerator implements TextGeneratorInterface using Google's Gemini models
type GeminiGenerator struct {
	client  *genai.Client
	timeout time.Duration
}

// NewGeminiGenerator creates a new Gemini client
func NewGeminiGenerator(apiKey string, cfg GeneratorConfig) (*GeminiGenerator, error) {
	ctx := context.Background()
	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		timeout: cfg.Timeout,
	}, nil
}

func (g *GeminiGenerator) Provider() string { return "gemini" }

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts GenerationOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		model := g.client.GenerativeModel(opts.Model)
		model.SetTemperature(opts.Temperature)

		if !opts.Stream {
			resp, err := model.GenerateContent(ctx, genai.Text(prompt))
			if err != nil {
				yield("", fmt.Errorf("gemini: %w", err))
				return
			}
			text := responseText(resp)
			if text == "" {
				yield("", errors.New("gemini: no content generated"))
				return
			}
			yield(text, nil)
			return
		}

		it := model.GenerateContentStream(ctx, genai.Text(prompt))
		for {
			resp, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("gemini stream: %w", err))
				return
			}
			text := responseText(resp)
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// Close closes the Gemini client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
