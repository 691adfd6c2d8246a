package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

func newTestFetcher(t *testing.T) *implFetcher {
	t.Helper()
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.Paths.Temp = t.TempDir()
	cfg.Paths.Downloads = t.TempDir()
	return New(cfg, executor.New(), logger.New("error")).(*implFetcher)
}

func TestFetchLocal(t *testing.T) {
	f := newTestFetcher(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	var gotFraction float64
	artifact, err := f.Fetch(ctx, LocalPath(path), func(fraction float64, _ string) {
		gotFraction = fraction
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if artifact.Path != path {
		t.Errorf("Path = %q, want %q", artifact.Path, path)
	}
	if artifact.Title != "sample" {
		t.Errorf("Title = %q, want sample", artifact.Title)
	}
	if artifact.Temporary {
		t.Error("local artifact must not be temporary")
	}
	if gotFraction != 1.0 {
		t.Errorf("final progress fraction = %v, want 1.0", gotFraction)
	}
}

func TestFetchLocalMissing(t *testing.T) {
	f := newTestFetcher(t)

	_, err := f.Fetch(context.Background(), LocalPath(filepath.Join(t.TempDir(), "nope.mp3")), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFetchLocalDirectory(t *testing.T) {
	f := newTestFetcher(t)

	_, err := f.Fetch(context.Background(), LocalPath(t.TempDir()), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestPersistUpload(t *testing.T) {
	f := newTestFetcher(t)

	artifact, err := f.PersistUpload(strings.NewReader("audio-bytes"), "meeting.m4a")
	if err != nil {
		t.Fatalf("PersistUpload() error = %v", err)
	}

	if !artifact.Temporary {
		t.Error("persisted upload must be temporary")
	}
	if artifact.Title != "meeting" {
		t.Errorf("Title = %q, want meeting", artifact.Title)
	}
	if filepath.Ext(artifact.Path) != ".m4a" {
		t.Errorf("extension = %q, want .m4a", filepath.Ext(artifact.Path))
	}

	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("content = %q, want audio-bytes", data)
	}
}

func TestPersistUploadCollisionResistance(t *testing.T) {
	f := newTestFetcher(t)

	a, err := f.PersistUpload(strings.NewReader("one"), "clip.mp3")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.PersistUpload(strings.NewReader("two"), "clip.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if a.Path == b.Path {
		t.Errorf("two uploads of the same name share a path: %s", a.Path)
	}
}

func TestClassifyExtractionError(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"unavailable video", "ERROR: Video unavailable", ErrNotFound},
		{"http 404", "ERROR: unable to fetch: HTTP Error 404", ErrNotFound},
		{"invalid url", "'xyz' is not a valid URL", ErrNotFound},
		{"resolve failure", "ERROR: Unable to download webpage: <urlopen error [Errno -3] Temporary failure in name resolution>", ErrNetwork},
		{"timeout", "ERROR: connection timed out", ErrNetwork},
		{"generic", "ERROR: ffmpeg exited with code 1", ErrExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyExtractionError(tt.stderr); !errors.Is(got, tt.want) {
				t.Errorf("classifyExtractionError(%q) = %v, want %v", tt.stderr, got, tt.want)
			}
		})
	}
}

func TestDownloadPercentParsing(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"[download]  42.7% of 3.42MiB at 1.2MiB/s ETA 00:02", "42.7"},
		{"[download] 100% of 3.42MiB in 00:03", "100"},
		{"[youtube] extracting metadata", ""},
	}

	for _, tt := range tests {
		m := reDownloadPercent.FindStringSubmatch(tt.line)
		if tt.want == "" {
			if m != nil {
				t.Errorf("line %q unexpectedly matched: %v", tt.line, m)
			}
			continue
		}
		if m == nil || m[1] != tt.want {
			t.Errorf("line %q parsed %v, want %s", tt.line, m, tt.want)
		}
	}
}

func TestResolveOutputExtensionMismatch(t *testing.T) {
	f := newTestFetcher(t)
	dir := t.TempDir()

	// Declared container is webm, but the extractor produced m4a.
	if err := os.WriteFile(filepath.Join(dir, "My Talk.m4a"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := f.resolveOutput(dir, &mediaInfo{Title: "My Talk", Ext: "webm"})
	if err != nil {
		t.Fatalf("resolveOutput() error = %v", err)
	}
	if filepath.Base(path) != "My Talk.m4a" {
		t.Errorf("resolved %q, want My Talk.m4a", path)
	}
}

func TestResolveOutputExactMatch(t *testing.T) {
	f := newTestFetcher(t)
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "Talk.m4a"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := f.resolveOutput(dir, &mediaInfo{Title: "Talk", Ext: "m4a"})
	if err != nil {
		t.Fatalf("resolveOutput() error = %v", err)
	}
	if filepath.Base(path) != "Talk.m4a" {
		t.Errorf("resolved %q, want Talk.m4a", path)
	}
}

func TestResolveOutputMissing(t *testing.T) {
	f := newTestFetcher(t)

	_, err := f.resolveOutput(t.TempDir(), &mediaInfo{Title: "Ghost", Ext: "m4a"})
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("error = %v, want ErrExtraction", err)
	}
}

func TestNormalizedDownloadArgsAreDeterministic(t *testing.T) {
	f := newTestFetcher(t)
	f.cfg.Fetch.Normalize = true

	args := f.downloadArgs("https://example.com/v", t.TempDir())
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--audio-format mp3") {
		t.Errorf("args missing fixed codec: %v", args)
	}
	if !strings.Contains(joined, "--audio-quality 192K") {
		t.Errorf("args missing fixed quality: %v", args)
	}
}
