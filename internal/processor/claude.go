package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

type implClaude struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// Process invokes the claude CLI in non-interactive mode. The transcript
// is truncated to the configured limit before prompt construction to
// respect command-line length and latency limits, and the whole call runs
// under the configured timeout.
func (p *implClaude) Process(ctx context.Context, text string, directive Directive) (string, error) {
	limited := truncate(text, p.cfg.Process.Claude.MaxChars)
	prompt := BuildPrompt(limited, directive)

	timeout := time.Duration(p.cfg.Process.Claude.TimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p.logger.Debug(ctx, "Running %s --print (%d prompt chars, %s timeout)",
		p.cfg.Process.Claude.Binary, len(prompt), timeout)

	out, err := p.executor.Execute(runCtx, p.cfg.Process.Claude.Binary, "--print", prompt)
	if err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("%w: %s not installed", ErrBackendUnavailable, p.cfg.Process.Claude.Binary)
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			return "", fmt.Errorf("%w: after %s", ErrTimeout, timeout)
		default:
			var cmdErr *executor.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
				return "", &BackendError{Message: cmdErr.Stderr}
			}
			return "", &BackendError{Message: err.Error()}
		}
	}

	result := strings.TrimSpace(out)
	if result == "" {
		return "", &BackendError{Message: "empty response from claude CLI"}
	}
	return result, nil
}
