package bridge

import (
	"context"
	"sync"
)

// Deferred holds the outcome of an asynchronous computation that resolves
// exactly once, with either a value or an error. Resolution attempts after
// the first are ignored.
type Deferred[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// resolve completes the deferred with a value. First resolution wins.
func (d *Deferred[T]) resolve(val T) {
	d.once.Do(func() {
		d.val = val
		close(d.done)
	})
}

// reject completes the deferred with an error. First resolution wins.
func (d *Deferred[T]) reject(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Await blocks until the deferred resolves or ctx expires. An expired ctx
// does not resolve the deferred; a later Await can still observe the
// eventual outcome.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.val, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the deferred has resolved.
// Useful in select statements alongside other channels.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}
