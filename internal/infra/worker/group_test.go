package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_RunsTasks(t *testing.T) {
	g := NewGroup(nil)
	ctx := context.Background()

	var n int32
	for i := 0; i < 20; i++ {
		if err := g.Go(ctx, func(context.Context) error {
			atomic.AddInt32(&n, 1)
			return nil
		}); err != nil {
			t.Fatalf("Go: %v", err)
		}
	}
	g.Stop()
	if got := atomic.LoadInt32(&n); got != 20 {
		t.Errorf("expected 20 tasks run, got %d", got)
	}
}

func TestGroup_HungTasksDoNotBlockOthers(t *testing.T) {
	g := NewGroup(nil)
	ctx, cancel := context.WithCancel(context.Background())

	// More hung tasks than any fixed worker count would allow.
	for i := 0; i < 64; i++ {
		_ = g.Go(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
	}

	done := make(chan struct{})
	if err := g.Go(ctx, func(context.Context) error { close(done); return nil }); err != nil {
		t.Fatalf("Go: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was blocked behind hung tasks")
	}

	cancel()
	g.Stop()
}

func TestGroup_SurvivesFailingTasks(t *testing.T) {
	g := NewGroup(nil)
	ctx := context.Background()

	_ = g.Go(ctx, func(context.Context) error { return errors.New("boom") })
	_ = g.Go(ctx, func(context.Context) error { panic("kaboom") })

	done := make(chan struct{})
	_ = g.Go(ctx, func(context.Context) error { close(done); return nil })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("group stopped running tasks after a failure")
	}
	g.Stop()
}

func TestGroup_StopWaitsForInFlight(t *testing.T) {
	g := NewGroup(nil)
	release := make(chan struct{})
	var finished int32
	var started sync.WaitGroup
	started.Add(1)

	_ = g.Go(context.Background(), func(context.Context) error {
		started.Done()
		<-release
		atomic.StoreInt32(&finished, 1)
		return nil
	})
	started.Wait()

	stopped := make(chan struct{})
	go func() { g.Stop(); close(stopped) }()

	select {
	case <-stopped:
		t.Fatal("Stop returned before the task finished")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	<-stopped
	if atomic.LoadInt32(&finished) != 1 {
		t.Error("expected task to finish before Stop returned")
	}
}

func TestGroup_GoAfterStop(t *testing.T) {
	g := NewGroup(nil)
	g.Stop()
	g.Stop()

	if err := g.Go(context.Background(), func(context.Context) error { return nil }); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if err := g.Go(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil task")
	}
}
