package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
)

// Stage is the orchestrator's unit of sequencing and progress allotment.
type Stage string

const (
	StageFetch      Stage = "fetch"
	StageTranscribe Stage = "transcribe"
	StageProcess    Stage = "process"
)

// ProgressEvent reports overall pipeline progress. Fraction is already
// rescaled into [0,1] across all stages.
type ProgressEvent struct {
	Stage    Stage
	Fraction float64
	Message  string
}

// ProgressFunc is the single external progress sink for a pipeline run.
type ProgressFunc func(ProgressEvent)

// Result is the only object the pipeline exposes to its caller.
type Result struct {
	SourceLabel     string
	Transcript      string
	ProcessedText   string
	HasProcessed    bool
	Directive       processor.Directive
	LanguageTag     string
	SucceededStages []Stage

	// FailureStage and FailureMessage describe a non-fatal stage failure
	// the run degraded through. Both are empty on a fully clean run.
	FailureStage   Stage
	FailureMessage string
}

// Succeeded reports whether the given stage completed.
func (r *Result) Succeeded(stage Stage) bool {
	for _, s := range r.SucceededStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Pipeline sequences fetch, transcribe and process for one source.
type Pipeline interface {
	Run(ctx context.Context, locator fetcher.SourceLocator, directive processor.Directive) (*Result, error)
}
