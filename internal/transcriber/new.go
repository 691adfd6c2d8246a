package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

// New creates the Transcriber implementation selected by configuration.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcribe.Provider {
	case config.ProviderGemini:
		if len(cfg.Gemini.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini transcriber requires an API key")
		}
		return &implGemini{cfg: cfg, logger: log}, nil
	case config.ProviderWhisper:
		return &implWhisper{cfg: cfg, executor: exec, logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown transcribe provider: %s", cfg.Transcribe.Provider)
	}
}
