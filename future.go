package crypton

import "context"

// Future is the pending result of a function started with Async.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Async runs fn in a new goroutine and returns immediately.
//
//	f := crypton.Async(func() (string, error) {
//	    return c.Crypt(ctx, password)
//	})
//	hash, err := f.Await(ctx)
func Async[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx ends. When ctx ends first
// the function keeps running and its result can still be awaited later.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
