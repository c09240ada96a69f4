// File: internal/infra/worker/group.go
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Task is one self-contained unit of work, e.g. a single inbound message.
type Task func(ctx context.Context) error

var ErrStopped = errors.New("worker group stopped")

// Group runs every submitted task on its own goroutine, so a task that
// hangs never delays the others. A failing or panicking task is logged.
// Stop waits for the tasks still in flight.
type Group struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	stopped bool
	log     *zerolog.Logger
}

func NewGroup(logger *zerolog.Logger) *Group {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Group{log: logger}
}

// Go starts task. It never blocks on other tasks.
func (g *Group) Go(ctx context.Context, task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return ErrStopped
	}
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		if err := g.run(ctx, task); err != nil {
			g.log.Error().Err(err).Msg("task failed")
		}
	}()
	return nil
}

func (g *Group) run(ctx context.Context, task Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task panic: %v", rec)
		}
	}()
	return task(ctx)
}

// Stop rejects new tasks and waits for in-flight ones. Safe to call twice.
func (g *Group) Stop() {
	g.mu.Lock()
	g.stopped = true
	g.mu.Unlock()
	g.wg.Wait()
}
