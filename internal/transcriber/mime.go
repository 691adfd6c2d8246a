package transcriber

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
)

// extensionMIMETypes backs up the platform MIME database for the audio
// containers the pipeline commonly sees.
var extensionMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".webm": "audio/webm",
}

// DetectMIMEType classifies an audio file by its extension. The fallback
// for unrecognized extensions is the generic lossless container type.
func DetectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	if t := mime.TypeByExtension(ext); t != "" && strings.HasPrefix(t, "audio/") {
		// Strip any parameters the platform database appends.
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}

	if t, ok := extensionMIMETypes[ext]; ok {
		return t
	}
	return "audio/wav"
}

// ensureMIME fills in the artifact's MIME type when the fetcher left it
// unset. Classification happens here, identically for every backend.
func ensureMIME(artifact *fetcher.AudioArtifact) {
	if artifact.MIMEType == "" {
		artifact.MIMEType = DetectMIMEType(artifact.Path)
	}
}

// finalize rejects whitespace-only transcripts so an empty transcription
// is always a semantic failure, never a silent success.
func finalize(text, languageTag string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResult
	}
	return &Result{Text: text, LanguageTag: languageTag}, nil
}
