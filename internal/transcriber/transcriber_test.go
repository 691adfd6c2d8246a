package transcriber

import (
	"errors"
	"testing"

	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
)

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"mp3", "song.mp3", "audio/mpeg"},
		{"wav", "sample.wav", "audio/wav"},
		{"m4a", "talk.m4a", "audio/mp4"},
		{"aac", "clip.aac", "audio/aac"},
		{"flac", "album.flac", "audio/flac"},
		{"ogg", "voice.ogg", "audio/ogg"},
		{"uppercase extension", "SONG.MP3", "audio/mpeg"},
		{"unknown extension defaults", "mystery.xyz", "audio/wav"},
		{"no extension defaults", "noext", "audio/wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMIMEType(tt.path); got != tt.want {
				t.Errorf("DetectMIMEType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestEnsureMIME(t *testing.T) {
	artifact := &fetcher.AudioArtifact{Path: "clip.mp3"}
	ensureMIME(artifact)
	if artifact.MIMEType != "audio/mpeg" {
		t.Errorf("MIMEType = %q, want audio/mpeg", artifact.MIMEType)
	}

	// A pre-set MIME type is never overwritten.
	artifact = &fetcher.AudioArtifact{Path: "clip.mp3", MIMEType: "audio/custom"}
	ensureMIME(artifact)
	if artifact.MIMEType != "audio/custom" {
		t.Errorf("MIMEType = %q, want audio/custom", artifact.MIMEType)
	}
}

func TestFinalizeRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"newlines and tabs", "\n\t \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := finalize(tt.text, "en")
			if !errors.Is(err, ErrEmptyResult) {
				t.Errorf("finalize(%q) error = %v, want ErrEmptyResult", tt.text, err)
			}
		})
	}
}

func TestFinalizeKeepsText(t *testing.T) {
	res, err := finalize("hello world", "en")
	if err != nil {
		t.Fatalf("finalize() error = %v", err)
	}
	if res.Text != "hello world" {
		t.Errorf("Text = %q, want hello world", res.Text)
	}
	if res.LanguageTag != "en" {
		t.Errorf("LanguageTag = %q, want en", res.LanguageTag)
	}
}

func TestJoinSegments(t *testing.T) {
	data := []byte(`{
		"result": {"language": "fr"},
		"transcription": [
			{"text": " Bonjour", "offsets": {"from": 0, "to": 900}},
			{"text": " tout le monde ", "offsets": {"from": 900, "to": 2100}},
			{"text": "  ", "offsets": {"from": 2100, "to": 2200}},
			{"text": "au revoir", "offsets": {"from": 2200, "to": 3000}}
		]
	}`)

	text, language, err := joinSegments(data)
	if err != nil {
		t.Fatalf("joinSegments() error = %v", err)
	}
	if text != "Bonjour tout le monde au revoir" {
		t.Errorf("text = %q", text)
	}
	if language != "fr" {
		t.Errorf("language = %q, want fr", language)
	}
}

func TestJoinSegmentsInvalidJSON(t *testing.T) {
	_, _, err := joinSegments([]byte("not-json"))
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Errorf("error type = %T, want *BackendError", err)
	}
}
