package processor

import (
	"fmt"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

// New creates the Processor implementation selected by configuration.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Processor, error) {
	switch cfg.Process.Provider {
	case config.ProviderGemini:
		if len(cfg.Gemini.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini processor requires an API key")
		}
		return &implGemini{
			apiKeys: cfg.Gemini.APIKeys,
			model:   cfg.Gemini.Model,
			logger:  log,
		}, nil
	case config.ProviderClaude:
		return &implClaude{cfg: cfg, executor: exec, logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown process provider: %s", cfg.Process.Provider)
	}
}
