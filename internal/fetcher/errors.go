package fetcher

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the source does not exist or is unavailable.
	ErrNotFound = errors.New("source not found")

	// ErrNetwork indicates the remote source could not be reached.
	ErrNetwork = errors.New("network error")

	// ErrExtraction indicates the media extraction step itself failed.
	ErrExtraction = errors.New("extraction failed")
)

// classifyExtractionError maps yt-dlp stderr output onto the fetch error
// taxonomy. Unrecognized failures count as extraction errors.
func classifyExtractionError(stderr string) error {
	s := strings.ToLower(stderr)

	switch {
	case strings.Contains(s, "video unavailable"),
		strings.Contains(s, "404"),
		strings.Contains(s, "not found"),
		strings.Contains(s, "does not exist"),
		strings.Contains(s, "is not a valid url"):
		return ErrNotFound
	case strings.Contains(s, "unable to download"),
		strings.Contains(s, "network"),
		strings.Contains(s, "timed out"),
		strings.Contains(s, "temporary failure"),
		strings.Contains(s, "connection"),
		strings.Contains(s, "resolve"):
		return ErrNetwork
	default:
		return ErrExtraction
	}
}
