// Package storage provides a schemaless document store with Postgres and
// in-memory backends. Documents are grouped into named collections and
// addressed by a string primary key. Values round-trip through JSON, so
// numbers always read back as float64 regardless of how they were written.
package storage

import "context"

// Doc is a JSON-like document. Nested values follow encoding/json
// conventions: float64 numbers, string keys, []any arrays.
type Doc = map[string]any

// Store is the persistence contract shared by all backends.
//
// Upsert implements partial-update semantics: when the document exists only
// the set fields are merged over it; when it does not exist the inserted
// document is the union of filter, setOnInsert and set, with set winning on
// key conflicts. Callers should re-read after Upsert to observe the stored
// canonical form.
type Store interface {
	// Get fetches a document by primary key. Returns NotFoundError when absent.
	Get(ctx context.Context, collection, pk string) (Doc, error)

	// FindOne returns the first document matching filter, in insertion order.
	// Returns NotFoundError when nothing matches.
	FindOne(ctx context.Context, collection string, filter Doc) (Doc, error)

	// Find returns all documents matching filter, in insertion order.
	// A nil or empty filter matches every document in the collection.
	Find(ctx context.Context, collection string, filter Doc) ([]Doc, error)

	// Count reports how many documents match filter.
	Count(ctx context.Context, collection string, filter Doc) (int64, error)

	// Upsert merges set into the stored document, inserting it if missing.
	Upsert(ctx context.Context, collection, pk string, filter, set, setOnInsert Doc) error

	// Delete removes a document by primary key. Reports whether it existed.
	Delete(ctx context.Context, collection, pk string) (bool, error)
}

// mergeDocs builds the document inserted on first write: filter fields
// first, then setOnInsert defaults, then set values overriding both.
func mergeDocs(filter, setOnInsert, set Doc) Doc {
	merged := make(Doc, len(filter)+len(setOnInsert)+len(set))
	for k, v := range filter {
		merged[k] = v
	}
	for k, v := range setOnInsert {
		merged[k] = v
	}
	for k, v := range set {
		merged[k] = v
	}
	return merged
}
