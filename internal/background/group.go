// Package background runs detached best-effort tasks whose failures are only logged.
package background

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultTimeout bounds a single task when the group is built with a zero timeout.
const DefaultTimeout = 30 * time.Second

// Group dispatches fire-and-forget tasks. The request that spawned a task never
// joins it; Wait exists only for graceful shutdown and tests.
type Group struct {
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewGroup returns a Group that reports task failures to logger.
func NewGroup(logger *slog.Logger, timeout time.Duration) *Group {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Group{logger: logger, timeout: timeout}
}

// Go starts fn in its own goroutine. The task keeps the values of ctx but not its
// cancellation, so it outlives the HTTP request that dispatched it.
func (g *Group) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	g.wg.Add(1)
	taskCtx := context.WithoutCancel(ctx)
	go func() {
		defer g.wg.Done()
		ctx, cancel := context.WithTimeout(taskCtx, g.timeout)
		defer cancel()
		start := time.Now()
		if err := run(ctx, fn); err != nil {
			g.logger.ErrorContext(ctx, "background task failed", "task", name, "err", err)
			return
		}
		g.logger.DebugContext(ctx, "background task done", "task", name, "duration_ms", time.Since(start).Milliseconds())
	}()
}

// Wait blocks until every dispatched task has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}

func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
