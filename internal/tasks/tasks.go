// Package tasks runs work on background goroutines and hands the result
// back through a future. Each submission gets its own goroutine; results
// resolve independently and in no particular order.
package tasks

import (
	"context"
	"fmt"
)

// Future holds the eventual result of a submitted task.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on a new goroutine and returns a future for its result. A
// panic inside fn rejects the future instead of crashing the process.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("task panicked: %v", r)
			}
			close(f.done)
		}()

		f.val, f.err = fn()
	}()

	return f
}

// Resolved returns an already-completed future. Used by tests and by
// callers that have the result in hand.
func Resolved[T any](val T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: val, err: err}
	close(f.done)
	return f
}

// Done is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the result is available or the context ends.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Value returns the result. It blocks until the task completes.
func (f *Future[T]) Value() T {
	<-f.done
	return f.val
}

// Err returns the task error. It blocks until the task completes.
func (f *Future[T]) Err() error {
	<-f.done
	return f.err
}
