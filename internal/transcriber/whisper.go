package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/fetcher"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

// whisperTiers are the model sizes the local backend can load.
var whisperTiers = map[string]bool{
	"tiny":   true,
	"base":   true,
	"small":  true,
	"medium": true,
	"large":  true,
}

type implWhisper struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// whisperOutput matches the whisper.cpp -oj JSON layout.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []whisperSegment `json:"transcription"`
}

type whisperSegment struct {
	Text    string `json:"text"`
	Offsets struct {
		From int64 `json:"from"`
		To   int64 `json:"to"`
	} `json:"offsets"`
}

// Transcribe runs the local whisper model over the artifact and joins the
// emitted segments into one transcript.
func (t *implWhisper) Transcribe(ctx context.Context, artifact *fetcher.AudioArtifact) (*Result, error) {
	ensureMIME(artifact)

	modelPath, err := t.resolveModel()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(t.cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	outputPrefix := filepath.Join(t.cfg.Paths.Temp, "whisper-"+uuid.NewString())
	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	t.logger.Info(ctx, "Transcribing with whisper %s model: %s", t.cfg.Transcribe.Whisper.Model, artifact.Path)

	args := []string{
		"-m", modelPath,
		"-f", artifact.Path,
		"-oj",
		"-l", t.cfg.Transcribe.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Transcribe.Whisper.Threads),
		"--output-file", outputPrefix,
	}
	if _, err := t.executor.Execute(ctx, t.cfg.Transcribe.Whisper.BinaryPath, args...); err != nil {
		return nil, &BackendError{Message: err.Error()}
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, &BackendError{Message: fmt.Sprintf("read whisper output: %v", err)}
	}

	text, language, err := joinSegments(data)
	if err != nil {
		return nil, err
	}
	return finalize(text, language)
}

// resolveModel maps the configured tier onto a ggml model file.
func (t *implWhisper) resolveModel() (string, error) {
	tier := t.cfg.Transcribe.Whisper.Model
	if !whisperTiers[tier] {
		return "", fmt.Errorf("unknown whisper model tier: %s", tier)
	}

	path := filepath.Join(t.cfg.Transcribe.Whisper.ModelDir, "ggml-"+tier+".bin")
	if _, err := os.Stat(path); err != nil {
		return "", &BackendError{Message: fmt.Sprintf("model file not found: %s", path)}
	}
	return path, nil
}

// joinSegments concatenates segment texts in emission order separated by a
// single space, and surfaces the backend's detected language tag.
func joinSegments(data []byte) (text, language string, err error) {
	var out whisperOutput
	if jerr := json.Unmarshal(data, &out); jerr != nil {
		return "", "", &BackendError{Message: fmt.Sprintf("parse whisper output: %v", jerr)}
	}

	parts := make([]string, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		if trimmed := strings.TrimSpace(seg.Text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " "), out.Result.Language, nil
}
