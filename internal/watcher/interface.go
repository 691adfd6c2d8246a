package watcher

import "context"

// Watcher defines the interface for drop-folder monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is invoked for every new audio file in the watched folder
type EventHandler func(ctx context.Context, filePath string) error
