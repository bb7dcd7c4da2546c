package streams

import (
	"context"
	"errors"
	"math"
)

// Unbounded is the demand value that asks a publisher for every item it
// will ever produce. Requesting it turns off demand accounting entirely.
const Unbounded int64 = math.MaxInt64

// ErrNonPositiveDemand terminates a subscription whose subscriber requested
// zero or negative demand.
var ErrNonPositiveDemand = errors.New("streams: requested demand must be positive")

// Publisher is a provider of a potentially unbounded number of sequenced
// items, publishing them according to the demand signaled by its Subscriber.
//
// Subscribe is a factory method: it may be called any number of times, each
// call starting an independent subscription with its own state. A publisher
// must signal OnSubscribe before Subscribe returns, and must deliver at most
// one terminal signal (OnError or OnComplete) per subscription. After a
// terminal signal no further items are delivered.
//
// The context bounds the subscription: publishers that perform blocking work
// observe ctx and terminate the subscription with ctx.Err() when it ends.
// Cancellation policy beyond that belongs to the consumer, via
// Subscription.Cancel.
type Publisher[T any] interface {
	Subscribe(ctx context.Context, sub Subscriber[T])
}

// Subscriber is the callback set registered with a Publisher to receive
// item and terminal events.
//
// Publishers invoke the callbacks serially, never concurrently: an OnNext
// call has returned before the next signal is delivered. The item type is
// opaque to the streams machinery; items are handed over exactly as the
// publisher produced them.
type Subscriber[T any] interface {
	// OnSubscribe is invoked once, before any other signal. The provided
	// Subscription is the subscriber's handle for demand and cancellation.
	OnSubscribe(sub Subscription)
	// OnNext delivers the next item. Only invoked while requested demand
	// is outstanding.
	OnNext(item T)
	// OnError signals that the publisher failed. Terminal.
	OnError(err error)
	// OnComplete signals that the publisher finished successfully. Terminal.
	OnComplete()
}

// Subscription represents the one-to-one lifecycle of a Subscriber
// subscribing to a Publisher. It exists from OnSubscribe until a terminal
// signal or Cancel, and is never reused.
type Subscription interface {
	// Request signals demand for up to n further items. Demand is additive
	// and saturates at Unbounded. Requesting n <= 0 is a protocol violation
	// and terminates the subscription with ErrNonPositiveDemand.
	Request(n int64)
	// Cancel asks the publisher to stop delivering items. Delivery stops
	// without a terminal signal; items already in flight may still arrive.
	Cancel()
}
