package mongo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
	"github.com/kbukum/rxkit/streams"
)

// Query outcome labels used in spans, metrics, and logs.
const (
	statusOK       = "ok"
	statusError    = "error"
	statusCanceled = "canceled"
)

// cursor is the slice of the driver cursor the pump consumes. Unit tests
// substitute in-memory implementations.
type cursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// findPublisher is a cold publisher over a query: every Subscribe executes
// the query again through run and pumps decoded documents to the subscriber
// as demand arrives.
type findPublisher[T any] struct {
	span       string
	operation  string
	database   string
	collection string
	log        *logger.Logger
	metrics    *observability.Metrics
	run        func(ctx context.Context) (cursor, error)
}

var _ streams.Publisher[any] = (*findPublisher[any])(nil)

func (p *findPublisher[T]) Subscribe(ctx context.Context, sub streams.Subscriber[T]) {
	ctx, span := observability.StartSpan(ctx, p.span)
	s := &findSubscription[T]{
		id:   uuid.NewString(),
		ctx:  ctx,
		span: span,
		pub:  p,
		sub:  sub,
		wake: make(chan struct{}, 1),
	}
	observability.SetSpanAttribute(ctx, observability.AttrDBSystem, "mongodb")
	observability.SetSpanAttribute(ctx, observability.AttrDBName, p.database)
	observability.SetSpanAttribute(ctx, observability.AttrCollection, p.collection)
	observability.SetSpanAttribute(ctx, observability.AttrOperation, p.operation)
	observability.SetSpanAttribute(ctx, observability.AttrSubscriptionID, s.id)
	p.metrics.RecordSubscribe(ctx)

	sub.OnSubscribe(s)
	go s.pump()
}

// findSubscription pumps one query's documents to one subscriber. The pump
// goroutine is the only signal source after OnSubscribe, which keeps
// delivery serial; Request and Cancel merely update state and ring wake.
type findSubscription[T any] struct {
	id   string
	ctx  context.Context
	span trace.Span
	pub  *findPublisher[T]
	sub  streams.Subscriber[T]
	wake chan struct{}

	mu       sync.Mutex
	demand   int64
	failErr  error
	canceled bool
}

var _ streams.Subscription = (*findSubscription[any])(nil)

func (s *findSubscription[T]) Request(n int64) {
	s.mu.Lock()
	if s.canceled || s.failErr != nil {
		s.mu.Unlock()
		return
	}
	switch {
	case n <= 0:
		s.failErr = streams.ErrNonPositiveDemand
	case n >= streams.Unbounded-s.demand:
		s.demand = streams.Unbounded
	default:
		s.demand += n
	}
	s.mu.Unlock()
	s.notify()
}

func (s *findSubscription[T]) Cancel() {
	s.mu.Lock()
	s.canceled = true
	s.mu.Unlock()
	s.notify()
}

func (s *findSubscription[T]) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *findSubscription[T]) pump() {
	start := time.Now()
	var items int64

	finish := func(status string, err error) {
		s.pub.metrics.RecordQueryEnd(s.ctx, s.pub.collection, s.pub.operation, status, items, time.Since(start))
		observability.SetSpanAttribute(s.ctx, observability.AttrItemsReturned, items)
		observability.SetSpanAttribute(s.ctx, observability.AttrStatus, status)
		if err != nil {
			s.pub.metrics.RecordError(s.ctx, s.pub.operation, "mongo")
			observability.SetSpanError(s.ctx, err)
		}
		s.span.End()
		s.pub.log.Debug("query finished", map[string]interface{}{
			logger.FieldSubscription: s.id,
			logger.FieldOperation:    s.pub.operation,
			logger.FieldItems:        items,
			logger.FieldStatus:       status,
			logger.FieldDuration:     time.Since(start).Milliseconds(),
		})
	}

	if err := s.ctx.Err(); err != nil {
		s.sub.OnError(err)
		finish(statusError, err)
		return
	}

	cur, err := s.pub.run(s.ctx)
	if err != nil {
		s.sub.OnError(err)
		finish(statusError, err)
		return
	}
	defer cur.Close(s.ctx)

	for {
		s.mu.Lock()
		for s.demand == 0 && !s.canceled && s.failErr == nil {
			s.mu.Unlock()
			select {
			case <-s.wake:
			case <-s.ctx.Done():
				err := s.ctx.Err()
				s.sub.OnError(err)
				finish(statusError, err)
				return
			}
			s.mu.Lock()
		}
		canceled, fail := s.canceled, s.failErr
		if !canceled && fail == nil && s.demand != streams.Unbounded {
			s.demand--
		}
		s.mu.Unlock()

		if canceled {
			finish(statusCanceled, nil)
			return
		}
		if fail != nil {
			s.sub.OnError(fail)
			finish(statusError, fail)
			return
		}

		if !cur.Next(s.ctx) {
			if err := cur.Err(); err != nil {
				s.sub.OnError(err)
				finish(statusError, err)
				return
			}
			s.sub.OnComplete()
			finish(statusOK, nil)
			return
		}

		var item T
		if err := cur.Decode(&item); err != nil {
			s.sub.OnError(err)
			finish(statusError, err)
			return
		}
		s.sub.OnNext(item)
		items++
	}
}
