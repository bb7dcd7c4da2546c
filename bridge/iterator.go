package bridge

import (
	"context"
	"errors"
	"sync"

	"github.com/kbukum/rxkit/streams"
)

// ErrClosed is returned by Next after the iterator has been closed.
var ErrClosed = errors.New("bridge: iterator is closed")

// Iterator provides pull-based sequential access to a stream of values.
// The consumer calls Next() to retrieve values one at a time.
// Close must be called when done to release resources.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Iterate adapts pub into a pull-based Iterator. Each Next call requests
// exactly one item, so the publisher never runs ahead of the consumer.
// Close cancels the underlying subscription.
//
// The iterator is single-consumer: Next must not be called concurrently.
func Iterate[T any](ctx context.Context, pub streams.Publisher[T]) Iterator[T] {
	it := &pullIterator[T]{
		events: make(chan iterEvent[T], 2),
		stop:   make(chan struct{}),
	}
	pub.Subscribe(ctx, it)
	return it
}

// iterEvent carries one publisher signal to the pulling consumer.
type iterEvent[T any] struct {
	item     T
	err      error
	terminal bool
}

// pullIterator is both the subscriber handed to the publisher and the
// Iterator handed to the consumer. The events channel buffers one demanded
// item plus a trailing terminal so synchronous publishers never block
// delivering either.
type pullIterator[T any] struct {
	sub    streams.Subscription
	events chan iterEvent[T]
	stop   chan struct{}

	closeOnce sync.Once

	// consumer-side state, touched only from Next
	done bool
	err  error
}

var _ Iterator[int] = (*pullIterator[int])(nil)
var _ streams.Subscriber[int] = (*pullIterator[int])(nil)

func (it *pullIterator[T]) OnSubscribe(sub streams.Subscription) {
	it.sub = sub
}

func (it *pullIterator[T]) OnNext(item T) {
	it.send(iterEvent[T]{item: item})
}

func (it *pullIterator[T]) OnError(err error) {
	it.send(iterEvent[T]{err: err, terminal: true})
}

func (it *pullIterator[T]) OnComplete() {
	it.send(iterEvent[T]{terminal: true})
}

// send delivers an event unless the consumer has closed the iterator, in
// which case the signal is dropped so the publisher is never left blocked.
func (it *pullIterator[T]) send(ev iterEvent[T]) {
	select {
	case it.events <- ev:
	case <-it.stop:
	}
}

func (it *pullIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, it.err
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	select {
	case <-it.stop:
		return zero, false, ErrClosed
	default:
	}

	it.sub.Request(1)
	select {
	case ev := <-it.events:
		if ev.terminal {
			it.done = true
			it.err = ev.err
			return zero, false, ev.err
		}
		return ev.item, true, nil
	case <-it.stop:
		return zero, false, ErrClosed
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *pullIterator[T]) Close() error {
	it.closeOnce.Do(func() {
		close(it.stop)
		if it.sub != nil {
			it.sub.Cancel()
		}
	})
	return nil
}
