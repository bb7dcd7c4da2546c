package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/rxkit/component"
	"github.com/kbukum/rxkit/streams"
)

// Document is a schemaless record held by a DocStore.
type Document = map[string]interface{}

// DocStore is an in-memory document store implementing TestComponent.
// It stands in for a real database in tests: collections are seeded with
// documents, handed out as cold publishers, and rolled back between cases
// through Reset, Snapshot and Restore.
//
// A DocStore is safe for concurrent use. Documents returned by Documents
// and Publisher are copies of the stored state, so later mutations of the
// store do not leak into consumers.
type DocStore struct {
	name string

	mu      sync.RWMutex
	started bool
	seed    map[string][]Document
	data    map[string][]Document
}

var _ TestComponent = (*DocStore)(nil)

// NewDocStore creates an empty store with the given component name.
func NewDocStore(name string) *DocStore {
	return &DocStore{
		name: name,
		seed: make(map[string][]Document),
		data: make(map[string][]Document),
	}
}

// Seed loads documents into a collection and records them as the baseline
// that Reset returns to. Seeding the same collection again extends it.
func (s *DocStore) Seed(collection string, docs ...Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed[collection] = append(s.seed[collection], copyDocs(docs)...)
	s.data[collection] = append(s.data[collection], copyDocs(docs)...)
}

// Insert adds documents to a collection without touching the baseline,
// so the next Reset discards them.
func (s *DocStore) Insert(collection string, docs ...Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = append(s.data[collection], copyDocs(docs)...)
}

// Documents returns a copy of the documents currently in a collection,
// in insertion order.
func (s *DocStore) Documents(collection string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyDocs(s.data[collection])
}

// Count reports the number of documents currently in a collection.
func (s *DocStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

// Publisher returns a cold publisher over the documents currently in a
// collection. Each subscription replays the state as of this call.
func (s *DocStore) Publisher(collection string) streams.Publisher[Document] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return streams.FromSlice(copyDocs(s.data[collection]))
}

// Name implements component.Component.
func (s *DocStore) Name() string {
	return s.name
}

// Start implements component.Component.
func (s *DocStore) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

// Stop implements component.Component. Stored documents survive a Stop
// so that assertions can still inspect them after cleanup.
func (s *DocStore) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

// Health implements component.Component.
func (s *DocStore) Health(ctx context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return component.Health{
			Name:    s.name,
			Status:  component.StatusUnhealthy,
			Message: "not started",
		}
	}
	return component.Health{
		Name:    s.name,
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d collections", len(s.data)),
	}
}

// Reset implements TestComponent. It discards all inserts and restores
// every collection to its seeded baseline.
func (s *DocStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = copyStore(s.seed)
	return nil
}

// Snapshot implements TestComponent. The returned snapshot is a deep copy
// of the current collections and stays valid however the store changes.
func (s *DocStore) Snapshot(ctx context.Context) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStore(s.data), nil
}

// Restore implements TestComponent. It accepts only snapshots produced by
// Snapshot on a DocStore.
func (s *DocStore) Restore(ctx context.Context, snapshot interface{}) error {
	state, ok := snapshot.(map[string][]Document)
	if !ok {
		return fmt.Errorf("docstore %s: unsupported snapshot type %T", s.name, snapshot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = copyStore(state)
	return nil
}

// copyDocs copies a document slice one level deep. Nested values are
// shared, which is fine for fixture data.
func copyDocs(docs []Document) []Document {
	if docs == nil {
		return nil
	}
	out := make([]Document, len(docs))
	for i, doc := range docs {
		cp := make(Document, len(doc))
		for k, v := range doc {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

func copyStore(store map[string][]Document) map[string][]Document {
	out := make(map[string][]Document, len(store))
	for name, docs := range store {
		out[name] = copyDocs(docs)
	}
	return out
}
