// Package parallel provides a small fixed-size worker pool used by the
// batch runner (cmd/goprolog) to evaluate several independent queries
// concurrently.
//
// It deliberately stays outside pkg/prolog: the resolver itself is
// single-threaded and cooperative (spec.md §5) — each query's search runs on
// the one producer goroutine behind its proof channel and never fans out
// further. This pool exists only to fan out across
// *independent* Resolver instances — each task builds and drains its own
// database and resolver, so the only state shared across goroutines is the
// task channel and the results collector, never a Resolver or Substitution.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolShutdown is returned by Submit once the pool has been shut down.
var ErrPoolShutdown = errors.New("parallel: pool is shut down")

// WorkerPool runs submitted tasks on a fixed number of goroutines.
type WorkerPool struct {
	tasks    chan func()
	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool starts a pool with the given number of workers. A
// non-positive size is treated as 1: batch mode always makes forward
// progress even if misconfigured.
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	wp := &WorkerPool{
		tasks:    make(chan func()),
		shutdown: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			runRecovered(task)
		case <-wp.shutdown:
			return
		}
	}
}

// runRecovered invokes task, converting a panic into a printed diagnostic
// rather than taking down the whole batch run — one malformed query file
// should not abort the others.
func runRecovered(task func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("batch task panicked: %v\n", r)
		}
	}()
	task()
}

// Submit enqueues task, blocking until a worker accepts it, ctx is done, or
// the pool has been shut down.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case wp.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdown:
		return ErrPoolShutdown
	}
}

// Shutdown signals all workers to stop accepting new tasks and waits for
// in-flight tasks to finish. Safe to call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdown)
		wp.wg.Wait()
	})
}
