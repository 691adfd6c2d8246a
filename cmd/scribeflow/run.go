package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/pipeline"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
	"github.com/nguyentantai21042004/scribe-flow/internal/results"
)

type runFlags struct {
	model     string
	task      string
	language  string
	output    string
	fallback  string
	normalize bool
	docx      bool
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <url-or-file>",
		Short: "Run the pipeline on a single source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.model, "model", "", "whisper model tier (tiny, base, small, medium, large)")
	cmd.Flags().StringVar(&flags.task, "task", "summarize", "processing task (summarize, translate, analyze, or a custom verb)")
	cmd.Flags().StringVar(&flags.language, "language", "", "target language for translation tasks")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory override")
	cmd.Flags().StringVar(&flags.fallback, "fallback", "", "fallback policy when processing fails (omit, transcript)")
	cmd.Flags().BoolVar(&flags.normalize, "normalize", false, "normalize downloaded audio to mp3")
	cmd.Flags().BoolVar(&flags.docx, "docx", false, "also export results as .docx")

	return cmd
}

func runOnce(source string, flags *runFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyRunFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	l := logger.New(cfg.Logging.Level)

	locator, err := resolveSource(source)
	if err != nil {
		return err
	}

	directive := processor.Directive{
		Task:           processor.Task(flags.task),
		TargetLanguage: flags.language,
	}

	onProgress := func(ev pipeline.ProgressEvent) {
		fmt.Fprintf(os.Stderr, "\r[%-10s] %3.0f%%  %-40s", ev.Stage, ev.Fraction*100, ev.Message)
	}

	p, err := buildPipeline(cfg, l, onProgress)
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, locator, directive)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	return saveResults(cfg, flags, res)
}

func saveResults(cfg *config.Config, flags *runFlags, res *pipeline.Result) error {
	stem := fileStem(res.SourceLabel)

	if !res.Succeeded(pipeline.StageTranscribe) {
		fmt.Fprintf(os.Stderr, "Warning: %s stage failed: %s\n", res.FailureStage, res.FailureMessage)
		return nil
	}

	transcriptPath, err := results.SaveTranscript(cfg.Paths.Output, stem, res.Transcript)
	if err != nil {
		return err
	}
	fmt.Println("Transcript:", transcriptPath)

	if res.HasProcessed {
		processedPath, err := results.SaveProcessed(cfg.Paths.Output, stem, res.Directive.Task, res.ProcessedText)
		if err != nil {
			return err
		}
		fmt.Println("Processed: ", processedPath)

		if flags.docx {
			docxPath := strings.TrimSuffix(processedPath, ".txt") + ".docx"
			if err := results.ExportDocx(res.SourceLabel, res.ProcessedText, docxPath); err != nil {
				return err
			}
			fmt.Println("Document:  ", docxPath)
		}
	} else if flags.docx {
		docxPath := strings.TrimSuffix(transcriptPath, ".txt") + ".docx"
		if err := results.ExportTranscriptDocx(res.SourceLabel, res.Transcript, docxPath); err != nil {
			return err
		}
		fmt.Println("Document:  ", docxPath)
	}

	if res.FailureStage != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s stage failed: %s\n", res.FailureStage, res.FailureMessage)
	}
	return nil
}

func applyRunFlags(cfg *config.Config, flags *runFlags) {
	if flags.model != "" {
		cfg.Transcribe.Whisper.Model = flags.model
	}
	if flags.output != "" {
		cfg.Paths.Output = flags.output
	}
	if flags.fallback != "" {
		cfg.Process.Fallback = flags.fallback
	}
	if flags.normalize {
		cfg.Fetch.Normalize = true
	}
}

// resolveSource maps the positional argument onto a locator. Anything
// that is not an http(s) URL must be an existing local file.
func resolveSource(source string) (fetcher.SourceLocator, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetcher.RemoteURL(source), nil
	}
	info, err := os.Stat(source)
	if err != nil {
		return fetcher.SourceLocator{}, fmt.Errorf("source file not found: %s", source)
	}
	if info.IsDir() {
		return fetcher.SourceLocator{}, fmt.Errorf("source is a directory: %s", source)
	}
	return fetcher.LocalPath(source), nil
}

// fileStem turns a source label into a filesystem-safe output stem.
func fileStem(label string) string {
	stem := strings.TrimSuffix(filepath.Base(label), filepath.Ext(label))
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	stem = replacer.Replace(stem)
	if stem == "" {
		stem = "result"
	}
	return stem
}
