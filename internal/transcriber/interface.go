package transcriber

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
)

// Result is the transcript produced from one audio artifact.
// LanguageTag is empty when the backend could not detect a language.
type Result struct {
	Text        string
	LanguageTag string
}

var (
	// ErrUploadFailed indicates the artifact could not reach the backend.
	ErrUploadFailed = errors.New("audio upload failed")

	// ErrEmptyResult indicates the backend produced no usable text.
	ErrEmptyResult = errors.New("transcription returned empty result")
)

// BackendError carries a message from the transcription backend.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("transcription backend error: %s", e.Message)
}

// Transcriber converts an audio artifact into text.
type Transcriber interface {
	Transcribe(ctx context.Context, artifact *fetcher.AudioArtifact) (*Result, error)
}
