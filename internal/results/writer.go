package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
)

// SaveTranscript writes the raw transcript as UTF-8 plain text next to the
// source stem and returns the written path.
func SaveTranscript(dir, stem, text string) (string, error) {
	return save(dir, stem+"_transcript.txt", text)
}

// SaveProcessed writes the processed output. Summaries keep the historical
// _summary suffix; every other task names the file after itself.
func SaveProcessed(dir, stem string, task processor.Task, text string) (string, error) {
	suffix := string(task)
	if task == processor.TaskSummarize {
		suffix = "summary"
	}
	suffix = strings.ReplaceAll(suffix, " ", "_")
	return save(dir, fmt.Sprintf("%s_%s.txt", stem, suffix), text)
}

func save(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
