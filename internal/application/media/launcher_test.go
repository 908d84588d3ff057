package media

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestLauncher_GoReturnsBeforeWorkFinishes(t *testing.T) {
	var l Launcher
	release := make(chan struct{})
	var ran atomic.Bool

	h := l.Go("t1", func() {
		<-release
		ran.Store(true)
	})
	if h.TaskID != "t1" {
		t.Fatalf("expected handle for t1, got %q", h.TaskID)
	}
	if h.StartedAt.IsZero() {
		t.Fatalf("expected start time to be set")
	}

	select {
	case <-h.Done():
		t.Fatalf("handle done before work was released")
	default:
	}

	close(release)
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("work did not finish")
	}
	if !ran.Load() {
		t.Fatalf("expected work to run")
	}
}

func TestLauncher_WaitHonoursContext(t *testing.T) {
	var l Launcher
	release := make(chan struct{})
	l.Go("slow", func() { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	close(release)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("expected clean wait after release, got %v", err)
	}
}

func TestLauncher_WaitWithNothingLaunched(t *testing.T) {
	var l Launcher
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
