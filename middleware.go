package funcall

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Middleware wraps a Tool with cross-cutting behavior (logging, recovery).
type Middleware func(Tool) Tool

// WithLogging returns a middleware that logs invocation start, end, duration,
// and errors.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Tool) Tool {
		return &loggingTool{toolBase: toolBase{next: next}, logger: logger}
	}
}

// WithRecovery returns a middleware that recovers handler panics and returns
// them as errors instead of taking down the dispatch goroutine.
func WithRecovery() Middleware {
	return func(next Tool) Tool {
		return &recoveryTool{toolBase{next: next}}
	}
}

// toolBase delegates everything except Invoke to the wrapped Tool; used by
// middleware wrappers.
type toolBase struct{ next Tool }

func (b *toolBase) Name() string                { return b.next.Name() }
func (b *toolBase) Description() string         { return b.next.Description() }
func (b *toolBase) Clearance() Clearance        { return b.next.Clearance() }
func (b *toolBase) Params() []Param             { return b.next.Params() }
func (b *toolBase) Definition() ([]byte, error) { return b.next.Definition() }

type loggingTool struct {
	toolBase
	logger *slog.Logger
}

func (m *loggingTool) Invoke(ctx context.Context, args []byte) (string, error) {
	m.logger.Info("tool call start", "tool", m.next.Name(), "clearance", m.next.Clearance())
	start := time.Now()
	out, err := m.next.Invoke(ctx, args)
	dur := time.Since(start)
	if err != nil {
		m.logger.Error("tool call error", "tool", m.next.Name(), "duration", dur, "error", err)
		return "", err
	}
	m.logger.Info("tool call end", "tool", m.next.Name(), "duration", dur)
	return out, nil
}

type recoveryTool struct{ toolBase }

func (r *recoveryTool) Invoke(ctx context.Context, args []byte) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = ""
			err = fmt.Errorf("panic in tool %q: %v", r.next.Name(), p)
		}
	}()
	return r.next.Invoke(ctx, args)
}
