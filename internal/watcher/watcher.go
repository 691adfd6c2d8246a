package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

func (w *implWatcher) Start(ctx context.Context) error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	w.l.Info(ctx, "Watching %s for new audio files", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.drain(ctx)
			return ctx.Err()
		case <-w.stopped:
			w.drain(ctx)
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				w.drain(ctx)
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.dispatch(ctx, event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				w.drain(ctx)
				return nil
			}
			w.l.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopped)
	})
	return w.fsWatcher.Close()
}

func (w *implWatcher) dispatch(ctx context.Context, path string) {
	if !isAudioFile(path) {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		select {
		case w.sem <- struct{}{}:
			defer func() { <-w.sem }()
		case <-ctx.Done():
			return
		}

		// Let the file finish copying before touching it.
		if !w.settle(ctx, path) {
			return
		}

		w.l.Info(ctx, "New audio file: %s", filepath.Base(path))
		if err := w.handler(ctx, path); err != nil {
			w.l.Error(ctx, "Failed to handle %s: %v", filepath.Base(path), err)
		}
	}()
}

// settle waits until the file size stops changing, which is the best
// signal available that a copy into the drop folder has completed.
func (w *implWatcher) settle(ctx context.Context, path string) bool {
	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(w.settleWait):
		}

		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.Size() == lastSize {
			return true
		}
		lastSize = info.Size()
	}
}

func (w *implWatcher) drain(ctx context.Context) {
	w.l.Info(ctx, "Waiting for in-flight files to finish")
	w.wg.Wait()
}

func isAudioFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}
