package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
)

// Run executes the fetch -> transcribe -> process sequence for one source.
//
// Fetch failures are fatal: there is no audio to continue with, so no
// Result is produced. A transcription failure still yields a partial
// Result recording that fetch succeeded. A processing failure degrades
// per the configured fallback policy instead of failing the run.
// Temporary artifacts are released on every exit path.
func (p *implPipeline) Run(ctx context.Context, locator fetcher.SourceLocator, directive processor.Directive) (*Result, error) {
	startTime := time.Now()
	p.logger.Info(ctx, "Starting pipeline run: %s", locator.Value)

	// Stage 1: fetch
	p.emit(StageFetch, 0, "Fetching audio...")
	artifact, err := p.fetcher.Fetch(ctx, locator, func(fraction float64, message string) {
		p.emit(StageFetch, fraction, message)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer p.cleanupArtifact(ctx, artifact)

	res := &Result{
		SourceLabel:     artifact.Title,
		Directive:       directive,
		SucceededStages: []Stage{StageFetch},
	}
	if res.SourceLabel == "" {
		res.SourceLabel = locator.Value
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	// Stage 2: transcribe
	p.emit(StageTranscribe, 0, "Transcribing audio...")
	transcription, err := p.transcriber.Transcribe(ctx, artifact)
	if err != nil {
		p.logger.Error(ctx, "Transcription failed for %s: %v", res.SourceLabel, err)
		res.FailureStage = StageTranscribe
		res.FailureMessage = err.Error()
		p.emit(StageTranscribe, 1, "Transcription failed")
		return res, nil
	}
	res.Transcript = transcription.Text
	res.LanguageTag = transcription.LanguageTag
	res.SucceededStages = append(res.SucceededStages, StageTranscribe)
	p.emit(StageTranscribe, 1, "Transcription completed")

	if err := ctx.Err(); err != nil {
		return res, err
	}

	// Stage 3: process
	p.emit(StageProcess, 0, fmt.Sprintf("Processing transcript (%s)...", directive.Task))
	processed, err := p.processor.Process(ctx, res.Transcript, directive)
	if err != nil {
		p.logger.Warn(ctx, "Processing failed for %s, degrading (%s policy): %v",
			res.SourceLabel, p.cfg.Process.Fallback, err)
		res.FailureStage = StageProcess
		res.FailureMessage = err.Error()
		if p.cfg.Process.Fallback == config.FallbackTranscript {
			res.ProcessedText = res.Transcript
			res.HasProcessed = true
		}
	} else {
		res.ProcessedText = processed
		res.HasProcessed = true
		res.SucceededStages = append(res.SucceededStages, StageProcess)
	}
	p.emit(StageProcess, 1, "Processing completed")

	p.logger.Info(ctx, "Pipeline run finished in %s (stages: %v)", time.Since(startTime), res.SucceededStages)
	return res, nil
}

// cleanupArtifact removes pipeline-owned temporary audio. Caller-owned
// artifacts (pre-existing local files) are left untouched.
func (p *implPipeline) cleanupArtifact(ctx context.Context, artifact *fetcher.AudioArtifact) {
	if artifact == nil || !artifact.Temporary {
		return
	}
	if err := os.Remove(artifact.Path); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp audio %s: %v", artifact.Path, err)
		return
	}
	p.logger.Debug(ctx, "Cleaned up temp audio: %s", artifact.Path)
	// Per-run fetch directories are empty once the file is gone.
	_ = os.Remove(filepath.Dir(artifact.Path))
}
