package pipeline

import (
	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcriber"
)

type implPipeline struct {
	cfg         *config.Config
	fetcher     fetcher.Fetcher
	transcriber transcriber.Transcriber
	processor   processor.Processor
	logger      logger.Logger
	onProgress  ProgressFunc
}

// New creates a new Pipeline instance. onProgress may be nil.
func New(cfg *config.Config, f fetcher.Fetcher, t transcriber.Transcriber, p processor.Processor, log logger.Logger, onProgress ProgressFunc) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		fetcher:     f,
		transcriber: t,
		processor:   p,
		logger:      log,
		onProgress:  onProgress,
	}
}
