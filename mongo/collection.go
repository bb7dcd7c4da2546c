package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/kbukum/rxkit/bridge"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
	"github.com/kbukum/rxkit/streams"
)

// Collection is a typed handle over a driver collection. T is the document
// type query results decode into.
type Collection[T any] struct {
	coll    *driver.Collection
	log     *logger.Logger
	metrics *observability.Metrics
}

// CollectionOf returns a typed handle for the named collection.
func CollectionOf[T any](db *Database, name string) *Collection[T] {
	return &Collection[T]{
		coll: db.db.Collection(name),
		log: db.log.WithFields(map[string]interface{}{
			logger.FieldCollection: name,
		}),
		metrics: db.metrics,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.coll.Name()
}

// Find returns a cold publisher over the documents matching filter. Each
// subscription executes the query anew and streams decoded documents as
// demand arrives. A nil filter matches all documents.
func (c *Collection[T]) Find(filter interface{}, opts ...FindOption) streams.Publisher[T] {
	filter = orMatchAll(filter)
	return &findPublisher[T]{
		span:       observability.SpanFind,
		operation:  "find",
		database:   c.coll.Database().Name(),
		collection: c.coll.Name(),
		log:        c.log,
		metrics:    c.metrics,
		run: func(ctx context.Context) (cursor, error) {
			cur, err := c.coll.Find(ctx, filter, findOptions(opts))
			if err != nil {
				return nil, err
			}
			return cur, nil
		},
	}
}

// FindOne returns a publisher that emits at most one matching document.
// A missing document completes the stream empty rather than failing it.
func (c *Collection[T]) FindOne(filter interface{}, opts ...FindOption) streams.Publisher[T] {
	filter = orMatchAll(filter)
	return &findPublisher[T]{
		span:       observability.SpanFindOne,
		operation:  "find_one",
		database:   c.coll.Database().Name(),
		collection: c.coll.Name(),
		log:        c.log,
		metrics:    c.metrics,
		run: func(ctx context.Context) (cursor, error) {
			return &singleResultCursor{res: c.coll.FindOne(ctx, filter, findOneOptions(opts))}, nil
		},
	}
}

// All runs the query and collects every matching document through the
// bridge. The result preserves server order and is empty, not nil, when
// nothing matches.
func (c *Collection[T]) All(ctx context.Context, filter interface{}, opts ...FindOption) ([]T, error) {
	return bridge.Collect(ctx, c.Find(filter, opts...))
}

// First resolves the first matching document. The boolean reports whether
// a document was found.
func (c *Collection[T]) First(ctx context.Context, filter interface{}, opts ...FindOption) (T, bool, error) {
	return bridge.First(ctx, c.FindOne(filter, opts...))
}

// CountDocuments reports how many documents match filter.
func (c *Collection[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	var n int64
	err := c.instrumented(ctx, observability.SpanCount, func(ctx context.Context) error {
		var err error
		n, err = c.coll.CountDocuments(ctx, orMatchAll(filter))
		return err
	})
	return n, err
}

// InsertOne stores a single document.
func (c *Collection[T]) InsertOne(ctx context.Context, doc T) error {
	return c.instrumented(ctx, observability.SpanInsert, func(ctx context.Context) error {
		_, err := c.coll.InsertOne(ctx, doc)
		return err
	})
}

// InsertMany stores the given documents in order.
func (c *Collection[T]) InsertMany(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	return c.instrumented(ctx, observability.SpanInsert, func(ctx context.Context) error {
		payload := make([]interface{}, len(docs))
		for i, doc := range docs {
			payload[i] = doc
		}
		_, err := c.coll.InsertMany(ctx, payload)
		return err
	})
}

// DeleteMany removes every document matching filter and reports how many
// were deleted.
func (c *Collection[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	var n int64
	err := c.instrumented(ctx, observability.SpanDelete, func(ctx context.Context) error {
		res, err := c.coll.DeleteMany(ctx, orMatchAll(filter))
		if err != nil {
			return err
		}
		n = res.DeletedCount
		return nil
	})
	return n, err
}

// Drop removes the collection.
func (c *Collection[T]) Drop(ctx context.Context) error {
	return c.coll.Drop(ctx)
}

func (c *Collection[T]) instrumented(ctx context.Context, span string, op func(context.Context) error) error {
	ctx, sp := observability.StartSpan(ctx, span)
	defer sp.End()
	observability.SetSpanAttribute(ctx, observability.AttrDBSystem, "mongodb")
	observability.SetSpanAttribute(ctx, observability.AttrDBName, c.coll.Database().Name())
	observability.SetSpanAttribute(ctx, observability.AttrCollection, c.coll.Name())
	if err := op(ctx); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	return nil
}

// singleResultCursor adapts the driver's SingleResult to the cursor shape
// the pump consumes. ErrNoDocuments maps to an empty stream, not a failure.
type singleResultCursor struct {
	res  *driver.SingleResult
	done bool
}

func (c *singleResultCursor) Next(context.Context) bool {
	if c.done {
		return false
	}
	c.done = true
	return c.res.Err() == nil
}

func (c *singleResultCursor) Decode(val interface{}) error {
	return c.res.Decode(val)
}

func (c *singleResultCursor) Err() error {
	if err := c.res.Err(); err != nil && !errors.Is(err, driver.ErrNoDocuments) {
		return err
	}
	return nil
}

func (c *singleResultCursor) Close(context.Context) error {
	return nil
}

// orMatchAll substitutes the universal filter for nil, which the driver
// rejects.
func orMatchAll(filter interface{}) interface{} {
	if filter == nil {
		return bson.D{}
	}
	return filter
}
