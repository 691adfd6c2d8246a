package results

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// downloadExtensions are the containers the downloads directory may hold.
var downloadExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".webm": true,
}

// Discover lists audio files in the downloads directory, newest name
// first. A missing directory yields an empty listing, not an error.
func Discover(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if downloadExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files
}
