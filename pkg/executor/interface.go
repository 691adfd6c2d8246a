package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs a command and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteStream runs a command and invokes onLine for every line the
	// command writes to stdout or stderr, in arrival order, then returns
	// the accumulated stdout.
	ExecuteStream(ctx context.Context, onLine func(string), name string, args ...string) (string, error)
}
