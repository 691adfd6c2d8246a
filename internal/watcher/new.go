package watcher

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

// audioExtensions lists the lowercase file extensions picked up by the watcher.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".webm": true,
}

type implWatcher struct {
	dir        string
	handler    EventHandler
	l          logger.Logger
	fsWatcher  *fsnotify.Watcher
	settleWait time.Duration
	sem        chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
	stopped    chan struct{}
}

// New creates a Watcher that monitors dir for new audio files and
// invokes handler for each one. At most maxConcurrent handlers run at
// a time.
func New(l logger.Logger, dir string, maxConcurrent int, handler EventHandler) (Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path is not a directory: %s", dir)
	}

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &implWatcher{
		dir:        dir,
		handler:    handler,
		l:          l,
		fsWatcher:  fsWatcher,
		settleWait: 2 * time.Second,
		sem:        make(chan struct{}, maxConcurrent),
		stopped:    make(chan struct{}),
	}, nil
}
