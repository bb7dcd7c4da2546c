package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindOption customizes a Find or FindOne query. All options are pure
// delegations to the driver's fluent builders; the wrapper adds no query
// semantics of its own.
type FindOption func(*options.FindOptions)

// WithSort sets the order documents are returned in,
// e.g. bson.D{{Key: "age", Value: -1}}.
func WithSort(sort interface{}) FindOption {
	return func(o *options.FindOptions) { o.SetSort(sort) }
}

// WithProjection limits the fields returned for each document.
func WithProjection(projection interface{}) FindOption {
	return func(o *options.FindOptions) { o.SetProjection(projection) }
}

// WithSkip skips the first n matching documents.
func WithSkip(n int64) FindOption {
	return func(o *options.FindOptions) { o.SetSkip(n) }
}

// WithLimit caps the number of returned documents.
func WithLimit(n int64) FindOption {
	return func(o *options.FindOptions) { o.SetLimit(n) }
}

// WithBatchSize sets the number of documents fetched per server round trip.
func WithBatchSize(n int32) FindOption {
	return func(o *options.FindOptions) { o.SetBatchSize(n) }
}

// WithCollation sets language-specific comparison rules.
func WithCollation(c *options.Collation) FindOption {
	return func(o *options.FindOptions) { o.SetCollation(c) }
}

// WithMaxTime bounds the server-side execution time of the query.
func WithMaxTime(d time.Duration) FindOption {
	return func(o *options.FindOptions) { o.SetMaxTime(d) }
}

// WithMaxAwaitTime bounds how long the server waits for new data on a
// tailable cursor.
func WithMaxAwaitTime(d time.Duration) FindOption {
	return func(o *options.FindOptions) { o.SetMaxAwaitTime(d) }
}

// WithNoCursorTimeout prevents the server from closing the cursor after
// its idle timeout.
func WithNoCursorTimeout(v bool) FindOption {
	return func(o *options.FindOptions) { o.SetNoCursorTimeout(v) }
}

// WithHint names the index the query planner should use.
func WithHint(hint interface{}) FindOption {
	return func(o *options.FindOptions) { o.SetHint(hint) }
}

func findOptions(opts []FindOption) *options.FindOptions {
	fo := options.Find()
	for _, opt := range opts {
		opt(fo)
	}
	return fo
}

// findOneOptions maps the shared option set onto the driver's FindOne
// surface. Limit, batch size, await time, and cursor timeout have no
// meaning for single-document reads and are dropped.
func findOneOptions(opts []FindOption) *options.FindOneOptions {
	fo := findOptions(opts)
	one := options.FindOne()
	if fo.Sort != nil {
		one.SetSort(fo.Sort)
	}
	if fo.Projection != nil {
		one.SetProjection(fo.Projection)
	}
	if fo.Skip != nil {
		one.SetSkip(*fo.Skip)
	}
	if fo.Collation != nil {
		one.SetCollation(fo.Collation)
	}
	if fo.MaxTime != nil {
		one.SetMaxTime(*fo.MaxTime)
	}
	if fo.Hint != nil {
		one.SetHint(fo.Hint)
	}
	return one
}
