package fetcher

import (
	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

type implFetcher struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Fetcher instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
