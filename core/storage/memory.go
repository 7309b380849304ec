package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local development.
// Documents round-trip through JSON on write so reads observe the same
// value normalization as the Postgres backend.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs  map[string]Doc
	order []string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, collection, pk string) (Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.collections[collection]
	if col == nil {
		return nil, &NotFoundError{Collection: collection, PK: pk}
	}
	doc, ok := col.docs[pk]
	if !ok {
		return nil, &NotFoundError{Collection: collection, PK: pk}
	}
	return cloneDoc(doc), nil
}

// FindOne implements Store.
func (s *MemoryStore) FindOne(_ context.Context, collection string, filter Doc) (Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	norm, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	col := s.collections[collection]
	if col != nil {
		for _, pk := range col.order {
			if doc, ok := col.docs[pk]; ok && matches(doc, norm) {
				return cloneDoc(doc), nil
			}
		}
	}
	return nil, &NotFoundError{Collection: collection}
}

// Find implements Store.
func (s *MemoryStore) Find(_ context.Context, collection string, filter Doc) ([]Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	norm, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	var out []Doc
	col := s.collections[collection]
	if col != nil {
		for _, pk := range col.order {
			if doc, ok := col.docs[pk]; ok && matches(doc, norm) {
				out = append(out, cloneDoc(doc))
			}
		}
	}
	return out, nil
}

// Count implements Store.
func (s *MemoryStore) Count(ctx context.Context, collection string, filter Doc) (int64, error) {
	docs, err := s.Find(ctx, collection, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(_ context.Context, collection, pk string, filter, set, setOnInsert Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[collection]
	if col == nil {
		col = &memCollection{docs: make(map[string]Doc)}
		s.collections[collection] = col
	}
	existing, ok := col.docs[pk]
	if !ok {
		inserted, err := roundTrip(mergeDocs(filter, setOnInsert, set))
		if err != nil {
			return err
		}
		col.docs[pk] = inserted
		col.order = append(col.order, pk)
		return nil
	}
	merged := cloneDoc(existing)
	normalizedSet, err := roundTrip(set)
	if err != nil {
		return err
	}
	for k, v := range normalizedSet {
		merged[k] = v
	}
	col.docs[pk] = merged
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, collection, pk string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[collection]
	if col == nil {
		return false, nil
	}
	if _, ok := col.docs[pk]; !ok {
		return false, nil
	}
	delete(col.docs, pk)
	for i, id := range col.order {
		if id == pk {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// roundTrip normalizes values to the forms encoding/json produces on read.
func roundTrip(doc Doc) (Doc, error) {
	if doc == nil {
		return Doc{}, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, unavailable("normalize", err)
	}
	var out Doc
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, unavailable("normalize", err)
	}
	if out == nil {
		out = Doc{}
	}
	return out, nil
}

func normalizeFilter(filter Doc) (Doc, error) {
	if len(filter) == 0 {
		return Doc{}, nil
	}
	return roundTrip(filter)
}

func cloneDoc(doc Doc) Doc {
	out, err := roundTrip(doc)
	if err != nil {
		// Stored docs already passed through roundTrip on write.
		return Doc{}
	}
	return out
}

func matches(doc, filter Doc) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !equalJSON(got, want) {
			return false
		}
	}
	return true
}

func equalJSON(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalJSON(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !equalJSON(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
