package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/pipeline"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
	"github.com/nguyentantai21042004/scribe-flow/internal/results"
	"github.com/nguyentantai21042004/scribe-flow/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var (
		dir           string
		task          string
		language      string
		maxConcurrent int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a drop folder and run the pipeline on every new audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(dir, task, language, maxConcurrent)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "inbox", "directory to watch")
	cmd.Flags().StringVar(&task, "task", "summarize", "processing task for each file")
	cmd.Flags().StringVar(&language, "language", "", "target language for translation tasks")
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 2, "maximum files processed at once")

	return cmd
}

func runWatch(dir, task, language string, maxConcurrent int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	l := logger.New(cfg.Logging.Level)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	directive := processor.Directive{
		Task:           processor.Task(task),
		TargetLanguage: language,
	}

	p, err := buildPipeline(cfg, l, nil)
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, path string) error {
		res, err := p.Run(ctx, fetcher.LocalPath(path), directive)
		if err != nil {
			return err
		}
		if res.FailureStage != "" {
			l.Warn(ctx, "%s: %s stage failed: %s", path, res.FailureStage, res.FailureMessage)
		}
		if !res.Succeeded(pipeline.StageTranscribe) {
			return nil
		}

		stem := fileStem(res.SourceLabel)
		if _, err := results.SaveTranscript(cfg.Paths.Output, stem, res.Transcript); err != nil {
			return err
		}
		if res.HasProcessed {
			if _, err := results.SaveProcessed(cfg.Paths.Output, stem, res.Directive.Task, res.ProcessedText); err != nil {
				return err
			}
		}
		return nil
	}

	w, err := watcher.New(l, dir, maxConcurrent, handler)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	l.Info(context.Background(), "Watcher stopped")
	return nil
}
