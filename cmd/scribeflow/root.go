package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/pipeline"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcriber"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scribeflow",
		Short: "Download, transcribe, and process audio",
		Long: `scribeflow runs audio through a three-stage pipeline: fetch the
source (a URL via yt-dlp or a local file), transcribe it (Gemini or
whisper.cpp), and process the transcript (summarize, translate,
analyze, or a custom task).`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	root.AddCommand(newRunCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newListCmd())
	return root
}

// buildPipeline wires the full stack from a loaded config. onProgress
// may be nil.
func buildPipeline(cfg *config.Config, l logger.Logger, onProgress pipeline.ProgressFunc) (pipeline.Pipeline, error) {
	exec := executor.New()

	f := fetcher.New(cfg, exec, l)

	tr, err := transcriber.New(cfg, exec, l)
	if err != nil {
		return nil, err
	}

	pr, err := processor.New(cfg, exec, l)
	if err != nil {
		return nil, err
	}

	return pipeline.New(cfg, f, tr, pr, l, onProgress), nil
}
