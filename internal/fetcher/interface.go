package fetcher

import (
	"context"
	"io"
)

// SourceKind discriminates the locator union.
type SourceKind int

const (
	KindRemoteURL SourceKind = iota
	KindLocalPath
)

// SourceLocator is a caller-supplied reference to an audio source.
type SourceLocator struct {
	Kind  SourceKind
	Value string
}

// RemoteURL builds a locator for a remote media URL.
func RemoteURL(url string) SourceLocator {
	return SourceLocator{Kind: KindRemoteURL, Value: url}
}

// LocalPath builds a locator for an existing local audio file.
func LocalPath(path string) SourceLocator {
	return SourceLocator{Kind: KindLocalPath, Value: path}
}

// AudioArtifact is a concrete local audio file plus descriptive metadata.
// Temporary marks files the pipeline owns and must delete when done.
type AudioArtifact struct {
	Path            string
	MIMEType        string
	Title           string
	DurationSeconds float64
	Temporary       bool
}

// ProgressFunc receives fractional progress in [0,1] with a short message.
type ProgressFunc func(fraction float64, message string)

// Fetcher resolves a source locator into a local audio artifact.
type Fetcher interface {
	Fetch(ctx context.Context, locator SourceLocator, onProgress ProgressFunc) (*AudioArtifact, error)
	// PersistUpload copies a transient upload buffer into the temp
	// directory so it survives for the duration of a pipeline run.
	PersistUpload(r io.Reader, origName string) (*AudioArtifact, error)
}
