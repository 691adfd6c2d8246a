package processor

import (
	"context"
	"errors"
	"fmt"
)

// Task names what the processing backend should do with a transcript.
// Values outside the predefined set act as custom instruction verbs.
type Task string

const (
	TaskSummarize Task = "summarize"
	TaskTranslate Task = "translate"
	TaskAnalyze   Task = "analyze"
)

// Directive is the caller's processing instruction. It is fixed before a
// pipeline run starts and never mutated mid-run.
type Directive struct {
	Task           Task
	TargetLanguage string
}

var (
	// ErrBackendUnavailable indicates the processing backend is not
	// installed or not reachable at all.
	ErrBackendUnavailable = errors.New("processing backend unavailable")

	// ErrTimeout indicates the backend exceeded its configured deadline.
	ErrTimeout = errors.New("processing timed out")
)

// BackendError carries a message from the processing backend.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("processing backend error: %s", e.Message)
}

// Processor turns a transcript into processed text per the directive.
type Processor interface {
	Process(ctx context.Context, text string, directive Directive) (string, error)
}
