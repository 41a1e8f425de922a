package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// GeneratorConfig holds provider-independent client settings.
type GeneratorConfig struct {
	BaseURL string
	Timeout time.Duration
}

type OpenAIGenerator struct {
	client  *openai.Client
	timeout time.Duration
}

func NewOpenAIGenerator(apiKey string, cfg GeneratorConfig) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(clientCfg),
		timeout: cfg.Timeout,
	}
}

func (g *OpenAIGenerator) Provider() string { return "openai" }

func (g *OpenAIGenerator) Close() error { return nil }

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, opts GenerationOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		req := openai.ChatCompletionRequest{
			Model:       opts.Model,
			Temperature: opts.Temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		if !opts.Stream {
			resp, err := g.client.CreateChatCompletion(ctx, req)
			if err != nil {
				yield("", fmt.Errorf("openai completion: %w", err))
				return
			}
			if len(resp.Choices) == 0 {
				yield("", errors.New("openai completion: no choices returned"))
				return
			}
			yield(resp.Choices[0].Message.Content, nil)
			return
		}

		req.Stream = true
		stream, err := g.client.CreateChatCompletionStream(ctx, req)
		if err != nil {
			yield("", fmt.Errorf("openai stream: %w", err))
			return
		}
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("openai stream recv: %w", err))
				return
			}
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			if !yield(chunk.Choices[0].Delta.Content, nil) {
				return
			}
		}
	}
}
