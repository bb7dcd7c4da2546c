package streams

import (
	"context"
	"sync"
)

// FromSlice creates a publisher that emits each element of items in order,
// then completes. Each subscription replays the slice independently.
func FromSlice[T any](items []T) Publisher[T] {
	return &indexedPublisher[T]{
		length: len(items),
		at:     func(i int) T { return items[i] },
	}
}

// Just creates a publisher that emits a single item, then completes.
func Just[T any](item T) Publisher[T] {
	return FromSlice([]T{item})
}

// Empty creates a publisher that completes immediately without emitting.
func Empty[T any]() Publisher[T] {
	return FromSlice[T](nil)
}

// Generate creates a publisher that emits fn(0) through fn(n-1) in order,
// then completes. Values are computed lazily as demand allows.
func Generate[T any](n int, fn func(i int) T) Publisher[T] {
	if n < 0 {
		n = 0
	}
	return &indexedPublisher[T]{length: n, at: fn}
}

// Fail creates a publisher that terminates every subscription with err
// before emitting any item.
func Fail[T any](err error) Publisher[T] {
	return failPublisher[T]{err: err}
}

// indexedPublisher emits length items addressed by at. It backs both
// FromSlice and Generate.
type indexedPublisher[T any] struct {
	length int
	at     func(i int) T
}

func (p *indexedPublisher[T]) Subscribe(ctx context.Context, sub Subscriber[T]) {
	s := &indexedSubscription[T]{ctx: ctx, pub: p, sub: sub}
	sub.OnSubscribe(s)
}

// indexedSubscription delivers items synchronously on the goroutine that
// calls Request. A single drain loop owns emission; re-entrant or concurrent
// Request calls only add demand and let the active drain pick it up, which
// keeps callback delivery serial as the Subscriber contract requires.
type indexedSubscription[T any] struct {
	ctx context.Context
	pub *indexedPublisher[T]
	sub Subscriber[T]

	mu       sync.Mutex
	pos      int
	demand   int64
	emitting bool
	done     bool
}

func (s *indexedSubscription[T]) Request(n int64) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	if n <= 0 {
		s.done = true
		s.mu.Unlock()
		s.sub.OnError(ErrNonPositiveDemand)
		return
	}
	s.demand = addDemand(s.demand, n)
	if s.emitting {
		s.mu.Unlock()
		return
	}
	s.emitting = true
	s.mu.Unlock()
	s.drain()
}

func (s *indexedSubscription[T]) Cancel() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
}

func (s *indexedSubscription[T]) drain() {
	for {
		s.mu.Lock()
		if s.done {
			s.emitting = false
			s.mu.Unlock()
			return
		}
		if err := s.ctx.Err(); err != nil {
			s.done = true
			s.emitting = false
			s.mu.Unlock()
			s.sub.OnError(err)
			return
		}
		if s.pos >= s.pub.length {
			s.done = true
			s.emitting = false
			s.mu.Unlock()
			s.sub.OnComplete()
			return
		}
		if s.demand == 0 {
			s.emitting = false
			s.mu.Unlock()
			return
		}
		i := s.pos
		s.pos++
		if s.demand != Unbounded {
			s.demand--
		}
		s.mu.Unlock()
		s.sub.OnNext(s.pub.at(i))
	}
}

// addDemand adds n to current, saturating at Unbounded on overflow.
func addDemand(current, n int64) int64 {
	sum := current + n
	if sum < 0 || current == Unbounded {
		return Unbounded
	}
	return sum
}

type failPublisher[T any] struct {
	err error
}

func (p failPublisher[T]) Subscribe(_ context.Context, sub Subscriber[T]) {
	sub.OnSubscribe(nopSubscription{})
	sub.OnError(p.err)
}

// nopSubscription backs publishers that terminate during Subscribe; by the
// time the subscriber can signal demand the subscription is already over.
type nopSubscription struct{}

func (nopSubscription) Request(int64) {}
func (nopSubscription) Cancel()       {}
