package bridge

import (
	"context"

	"github.com/kbukum/rxkit/streams"
)

// Option holds an optional value. Present reports whether Value is set.
type Option[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Option wrapping val.
func Some[T any](val T) Option[T] {
	return Option[T]{Value: val, Present: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Start subscribes to pub with unbounded demand and returns a Deferred that
// resolves with every emitted item, in emission order, once the publisher
// terminates. It does not block: the publisher drives resolution from
// whichever goroutine signals the terminal event.
//
// A publisher that fails mid-stream rejects the deferred with its error and
// any items buffered before the failure are discarded.
func Start[T any](ctx context.Context, pub streams.Publisher[T]) *Deferred[[]T] {
	d := newDeferred[[]T]()
	pub.Subscribe(ctx, &collector[T]{deferred: d})
	return d
}

// Collect subscribes to pub and blocks until it terminates, returning every
// emitted item in emission order. An empty stream yields an empty slice and
// a nil error.
func Collect[T any](ctx context.Context, pub streams.Publisher[T]) ([]T, error) {
	return Start(ctx, pub).Await(ctx)
}

// StartFirst subscribes to pub, takes its first item, and cancels the rest
// of the stream. The returned Deferred resolves with an absent Option when
// the publisher completes without emitting anything.
func StartFirst[T any](ctx context.Context, pub streams.Publisher[T]) *Deferred[Option[T]] {
	d := newDeferred[Option[T]]()
	pub.Subscribe(ctx, &firstSubscriber[T]{deferred: d})
	return d
}

// First blocks until pub emits its first item or terminates without one.
// The boolean reports whether an item was present.
func First[T any](ctx context.Context, pub streams.Publisher[T]) (T, bool, error) {
	opt, err := StartFirst(ctx, pub).Await(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return opt.Value, opt.Present, nil
}

// Each subscribes to pub and invokes fn for every item in emission order,
// blocking until the publisher terminates. An error from fn cancels the
// subscription and is returned as the result. fn runs on the publisher's
// signaling goroutine, so it should return promptly.
func Each[T any](ctx context.Context, pub streams.Publisher[T], fn func(ctx context.Context, item T) error) error {
	d := newDeferred[struct{}]()
	pub.Subscribe(ctx, &eachSubscriber[T]{ctx: ctx, deferred: d, fn: fn})
	_, err := d.Await(ctx)
	return err
}

// collector buffers every item and resolves its deferred on the terminal
// signal. Signals arrive serially per the subscriber contract, so no lock
// guards the buffer.
type collector[T any] struct {
	deferred *Deferred[[]T]
	items    []T
}

var _ streams.Subscriber[int] = (*collector[int])(nil)

func (c *collector[T]) OnSubscribe(sub streams.Subscription) {
	sub.Request(streams.Unbounded)
}

func (c *collector[T]) OnNext(item T) {
	c.items = append(c.items, item)
}

func (c *collector[T]) OnError(err error) {
	c.deferred.reject(err)
}

func (c *collector[T]) OnComplete() {
	if c.items == nil {
		c.items = []T{}
	}
	c.deferred.resolve(c.items)
}

// firstSubscriber resolves with the first item and cancels the upstream
// subscription so the publisher can release its resources early.
type firstSubscriber[T any] struct {
	deferred *Deferred[Option[T]]
	sub      streams.Subscription
	got      bool
}

var _ streams.Subscriber[int] = (*firstSubscriber[int])(nil)

func (f *firstSubscriber[T]) OnSubscribe(sub streams.Subscription) {
	f.sub = sub
	sub.Request(1)
}

func (f *firstSubscriber[T]) OnNext(item T) {
	if f.got {
		return
	}
	f.got = true
	f.sub.Cancel()
	f.deferred.resolve(Some(item))
}

func (f *firstSubscriber[T]) OnError(err error) {
	f.deferred.reject(err)
}

func (f *firstSubscriber[T]) OnComplete() {
	f.deferred.resolve(None[T]())
}

// eachSubscriber forwards items to fn. A consumer error wins the race for
// resolution and cancels upstream; signals that still arrive afterwards
// are dropped.
type eachSubscriber[T any] struct {
	ctx      context.Context
	deferred *Deferred[struct{}]
	fn       func(ctx context.Context, item T) error
	sub      streams.Subscription
	failed   bool
}

var _ streams.Subscriber[int] = (*eachSubscriber[int])(nil)

func (e *eachSubscriber[T]) OnSubscribe(sub streams.Subscription) {
	e.sub = sub
	sub.Request(streams.Unbounded)
}

func (e *eachSubscriber[T]) OnNext(item T) {
	if e.failed {
		return
	}
	if err := e.fn(e.ctx, item); err != nil {
		e.failed = true
		e.sub.Cancel()
		e.deferred.reject(err)
	}
}

func (e *eachSubscriber[T]) OnError(err error) {
	if e.failed {
		return
	}
	e.deferred.reject(err)
}

func (e *eachSubscriber[T]) OnComplete() {
	if e.failed {
		return
	}
	e.deferred.resolve(struct{}{})
}
