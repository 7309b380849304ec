package storage

import (
	"context"
	"testing"
)

func TestMemoryStoreUpsertInsertMergesAllParts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.Upsert(ctx, "category", "c1",
		Doc{"_id": "c1"},
		Doc{"name": "Birthday"},
		Doc{"created": "2024-01-01T00:00:00Z", "name": "ignored default"},
	)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	doc, err := s.Get(ctx, "category", "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc["_id"] != "c1" {
		t.Errorf("_id = %v", doc["_id"])
	}
	if doc["name"] != "Birthday" {
		t.Errorf("set must win over setOnInsert, name = %v", doc["name"])
	}
	if doc["created"] != "2024-01-01T00:00:00Z" {
		t.Errorf("created = %v", doc["created"])
	}
}

func TestMemoryStoreUpsertUpdateTouchesOnlySetFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	mustUpsert(t, s, "postcard", "p1", Doc{"_id": "p1"}, Doc{"name": "Sunset", "description": "warm"}, nil)
	mustUpsert(t, s, "postcard", "p1", Doc{"_id": "p1"}, Doc{"description": "golden"}, Doc{"created": "later"})

	doc, err := s.Get(ctx, "postcard", "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc["name"] != "Sunset" {
		t.Errorf("untouched field changed, name = %v", doc["name"])
	}
	if doc["description"] != "golden" {
		t.Errorf("description = %v", doc["description"])
	}
	if _, ok := doc["created"]; ok {
		t.Error("setOnInsert must not apply on update")
	}
}

func TestMemoryStoreNumbersNormalizeToFloat64(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	mustUpsert(t, s, "user", "42", Doc{"_id": int64(42)}, Doc{"chat_id": 99}, nil)

	doc, err := s.Get(ctx, "user", "42")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v, ok := doc["_id"].(float64); !ok || v != 42 {
		t.Errorf("_id = %T %v, want float64 42", doc["_id"], doc["_id"])
	}
	if v, ok := doc["chat_id"].(float64); !ok || v != 99 {
		t.Errorf("chat_id = %T %v, want float64 99", doc["chat_id"], doc["chat_id"])
	}

	// Filters written with Go ints must still match stored float64 values.
	found, err := s.FindOne(ctx, "user", Doc{"chat_id": 99})
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if found["_id"] != float64(42) {
		t.Errorf("found _id = %v", found["_id"])
	}
}

func TestMemoryStoreFindKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, pk := range []string{"b", "a", "c"} {
		mustUpsert(t, s, "category", pk, Doc{"_id": pk}, Doc{"kind": "x"}, nil)
	}

	docs, err := s.Find(ctx, "category", Doc{"kind": "x"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var got []string
	for _, d := range docs {
		got = append(got, d["_id"].(string))
	}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestMemoryStoreNotFoundAndDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "category", "missing"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.FindOne(ctx, "category", Doc{"name": "x"}); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	mustUpsert(t, s, "category", "c1", Doc{"_id": "c1"}, Doc{"name": "x"}, nil)

	existed, err := s.Delete(ctx, "category", "c1")
	if err != nil || !existed {
		t.Fatalf("delete = %v, %v", existed, err)
	}
	existed, err = s.Delete(ctx, "category", "c1")
	if err != nil || existed {
		t.Fatalf("second delete = %v, %v", existed, err)
	}
}

func TestMemoryStoreReadsAreIsolatedCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	mustUpsert(t, s, "user", "u1", Doc{"_id": "u1"}, Doc{"name": "original"}, nil)

	doc, _ := s.Get(ctx, "user", "u1")
	doc["name"] = "mutated"

	again, _ := s.Get(ctx, "user", "u1")
	if again["name"] != "original" {
		t.Fatalf("stored doc mutated through returned copy: %v", again["name"])
	}
}

func mustUpsert(t *testing.T, s Store, collection, pk string, filter, set, setOnInsert Doc) {
	t.Helper()
	if err := s.Upsert(context.Background(), collection, pk, filter, set, setOnInsert); err != nil {
		t.Fatalf("upsert %s/%s: %v", collection, pk, err)
	}
}
