package services

import "context"

// Future is the pending result of a service call started with Async.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Async starts call on its own goroutine and returns immediately. Service
// calls are safe to run concurrently, so callers can fan out several and
// Await them in any order.
func Async[T any](ctx context.Context, call func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = call(ctx)
	}()
	return f
}

// Await blocks until the call finishes or ctx is done. The call itself keeps
// the context it was started with.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
