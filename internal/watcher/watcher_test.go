package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/drop/talk.mp3", true},
		{"/drop/talk.WAV", true},
		{"/drop/talk.m4a", true},
		{"/drop/clip.webm", true},
		{"/drop/notes.txt", false},
		{"/drop/.hidden.mp3", false},
		{"/drop/noext", false},
	}
	for _, tt := range tests {
		if got := isAudioFile(tt.path); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNewRejectsMissingDirectory(t *testing.T) {
	_, err := New(logger.New("error"), "/nonexistent/drop", 1, nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewRejectsFilePath(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(logger.New("error"), f, 1, nil)
	if err == nil {
		t.Fatal("expected error for non-directory path")
	}
}

func TestWatcherHandlesNewAudioFile(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, filepath.Base(path))
		return nil
	}

	w, err := New(logger.New("error"), dir, 2, handler)
	if err != nil {
		t.Fatal(err)
	}
	w.(*implWatcher).settleWait = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "meeting.mp3"), []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("handler was not invoked for new audio file")
		case <-time.After(20 * time.Millisecond):
		}
	}

	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "meeting.mp3" {
		t.Errorf("handled = %v, want [meeting.mp3]", handled)
	}
}
