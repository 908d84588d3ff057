package media

import (
	"context"
	"sync"
	"time"
)

// Handle identifies a detached task for bookkeeping. It cannot cancel the
// task; completion is observed through the status store.
type Handle struct {
	TaskID    string
	StartedAt time.Time
	done      <-chan struct{}
}

// Done is closed when the task's unit of work returns.
func (h Handle) Done() <-chan struct{} {
	return h.done
}

// Launcher runs one goroutine per task with no concurrency limit.
type Launcher struct {
	wg sync.WaitGroup
}

// Go detaches fn and returns immediately.
func (l *Launcher) Go(taskID string, fn func()) Handle {
	done := make(chan struct{})
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer close(done)
		fn()
	}()
	return Handle{TaskID: taskID, StartedAt: time.Now(), done: done}
}

// Wait blocks until every launched task returned or ctx is done.
func (l *Launcher) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
