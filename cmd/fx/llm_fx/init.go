package llm_fx

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabiplan/internal/config"
	"tabiplan/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	ProvideGenerationOptions)

// ProvideTextGenerator creates the OpenAI or Gemini generator selected by LLM_PROVIDER.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.TextGeneratorInterface, error) {
	logger.Info("initializing text generator",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.Model()),
		zap.Bool("stream", cfg.LLMStream))

	generator, err := utils.NewTextGenerator(cfg.LLMProvider, cfg.APIKey(), utils.GeneratorConfig{
		BaseURL: cfg.BaseURL(),
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", cfg.LLMProvider, err)
	}

	lc.Append(fx.StopHook(generator.Close))
	return generator, nil
}

func ProvideGenerationOptions(cfg *config.Config) utils.GenerationOptions {
	return utils.GenerationOptions{
		Model:       cfg.Model(),
		Temperature: cfg.LLMTemperature,
		Stream:      cfg.LLMStream,
	}
}
