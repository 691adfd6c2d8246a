package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

// audioExtensions are probed when the extractor's declared container does
// not match the file it actually produced (a bestaudio request templated
// as .webm frequently yields .m4a).
var audioExtensions = []string{".m4a", ".webm", ".mp3", ".opus", ".ogg", ".wav", ".aac", ".flac"}

var reDownloadPercent = regexp.MustCompile(`\[download\]\s+([0-9.]+)%`)

// mediaInfo is the subset of yt-dlp's JSON dump the fetcher needs.
type mediaInfo struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Ext      string  `json:"ext"`
	ID       string  `json:"id"`
}

// fetchRemote downloads the best audio-only stream for the URL.
// With normalize enabled the output is always the configured codec at the
// configured quality; otherwise the source container passes through.
func (f *implFetcher) fetchRemote(ctx context.Context, url string, onProgress ProgressFunc) (*AudioArtifact, error) {
	info, err := f.probeMetadata(ctx, url)
	if err != nil {
		return nil, err
	}

	destDir, temporary, err := f.downloadDir()
	if err != nil {
		return nil, err
	}

	f.logger.Info(ctx, "Downloading audio: %s (%.0fs)", info.Title, info.Duration)

	args := f.downloadArgs(url, destDir)
	if _, err := f.executor.ExecuteStream(ctx, func(line string) {
		if m := reDownloadPercent.FindStringSubmatch(line); m != nil {
			if pct, perr := strconv.ParseFloat(m[1], 64); perr == nil {
				if onProgress != nil {
					onProgress(pct/100, fmt.Sprintf("Downloading: %.1f%%", pct))
				}
			}
		}
	}, f.cfg.Fetch.Binary, args...); err != nil {
		return nil, f.wrapExtractionError(err)
	}

	path, err := f.resolveOutput(destDir, info)
	if err != nil {
		return nil, err
	}

	if onProgress != nil {
		onProgress(1.0, "Download complete")
	}

	return &AudioArtifact{
		Path:            path,
		Title:           info.Title,
		DurationSeconds: info.Duration,
		Temporary:       temporary,
	}, nil
}

// probeMetadata asks yt-dlp for title, duration and the expected container
// without downloading anything.
func (f *implFetcher) probeMetadata(ctx context.Context, url string) (*mediaInfo, error) {
	out, err := f.executor.Execute(ctx, f.cfg.Fetch.Binary, "--no-warnings", "--dump-json", url)
	if err != nil {
		return nil, f.wrapExtractionError(err)
	}

	var info mediaInfo
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &info); err != nil {
		return nil, fmt.Errorf("%w: parse media metadata: %v", ErrExtraction, err)
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	return &info, nil
}

// downloadDir picks the destination and ownership of the fetched file.
func (f *implFetcher) downloadDir() (dir string, temporary bool, err error) {
	if f.cfg.Fetch.KeepDownloads {
		dir = f.cfg.Paths.Downloads
	} else {
		dir = filepath.Join(f.cfg.Paths.Temp, "fetch-"+uuid.NewString())
		temporary = true
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("create download dir: %w", err)
	}
	return dir, temporary, nil
}

func (f *implFetcher) downloadArgs(url, destDir string) []string {
	args := []string{
		"--no-warnings",
		"--newline",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
	}
	if f.cfg.Fetch.Normalize {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", f.cfg.Fetch.AudioFormat,
			"--audio-quality", f.cfg.Fetch.AudioQuality,
		)
	} else {
		args = append(args, "-f", "bestaudio[ext=m4a]/bestaudio/best")
	}
	return append(args, url)
}

// resolveOutput locates the downloaded file, correcting for the declared
// extension not matching the real container.
func (f *implFetcher) resolveOutput(destDir string, info *mediaInfo) (string, error) {
	stem := sanitizeTitle(info.Title)

	ext := "." + info.Ext
	if f.cfg.Fetch.Normalize {
		ext = "." + f.cfg.Fetch.AudioFormat
	}

	expected := filepath.Join(destDir, stem+ext)
	if fileExists(expected) {
		return expected, nil
	}

	for _, alt := range audioExtensions {
		candidate := filepath.Join(destDir, stem+alt)
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	// Last resort: glob the stem in case yt-dlp applied further renaming.
	matches, _ := filepath.Glob(filepath.Join(destDir, stem+".*"))
	if len(matches) > 0 {
		return matches[0], nil
	}

	return "", fmt.Errorf("%w: downloaded file not found for %q", ErrExtraction, info.Title)
}

// sanitizeTitle mirrors yt-dlp's default replacement of characters that
// cannot appear in filenames.
func sanitizeTitle(title string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"|", "｜",
		":", "：",
		"\"", "＂",
		"?", "？",
		"*", "＊",
		"<", "＜",
		">", "＞",
	)
	return replacer.Replace(title)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (f *implFetcher) wrapExtractionError(err error) error {
	var cmdErr *executor.CommandError
	if errors.As(err, &cmdErr) {
		class := classifyExtractionError(cmdErr.Stderr)
		if cmdErr.Stderr != "" {
			return fmt.Errorf("%w: %s", class, cmdErr.Stderr)
		}
		return fmt.Errorf("%w: %v", class, cmdErr.Err)
	}
	return fmt.Errorf("%w: %v", ErrExtraction, err)
}
