package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Fetch resolves the locator into a local audio artifact, emitting
// fractional progress in [0,1] along the way.
func (f *implFetcher) Fetch(ctx context.Context, locator SourceLocator, onProgress ProgressFunc) (*AudioArtifact, error) {
	switch locator.Kind {
	case KindRemoteURL:
		return f.fetchRemote(ctx, locator.Value, onProgress)
	case KindLocalPath:
		return f.fetchLocal(ctx, locator.Value, onProgress)
	default:
		return nil, fmt.Errorf("%w: unknown locator kind %d", ErrNotFound, locator.Kind)
	}
}

// fetchLocal validates an existing local file and wraps it without copying.
// The caller retains ownership, so the artifact is never temporary.
func (f *implFetcher) fetchLocal(ctx context.Context, path string, onProgress ProgressFunc) (*AudioArtifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not readable", ErrNotFound, path)
	}
	file.Close()

	if onProgress != nil {
		onProgress(1.0, "Local file ready")
	}

	name := filepath.Base(path)
	return &AudioArtifact{
		Path:  path,
		Title: name[:len(name)-len(filepath.Ext(name))],
	}, nil
}

// PersistUpload copies a transient upload buffer into the temp directory
// under a collision-resistant name. The resulting artifact is pipeline-owned.
func (f *implFetcher) PersistUpload(r io.Reader, origName string) (*AudioArtifact, error) {
	if err := os.MkdirAll(f.cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	ext := filepath.Ext(origName)
	dest := filepath.Join(f.cfg.Paths.Temp, uuid.NewString()+ext)

	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	return &AudioArtifact{
		Path:      dest,
		Title:     origName[:len(origName)-len(ext)],
		Temporary: true,
	}, nil
}
