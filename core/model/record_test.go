package model

import (
	"context"
	"testing"
	"time"

	"github.com/backostech/postcardbot/core/storage"
)

func testSchema() Schema {
	return NewSchema("category", "_id",
		FieldDef{Name: "name"},
		FieldDef{Name: "description", Default: "none"},
		FieldDef{Name: "created"},
	)
}

func testCollection() *Collection {
	c := NewCollection(storage.NewMemoryStore(), testSchema())
	c.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestSchemaForcesPKField(t *testing.T) {
	s := NewSchema("user", "_id", FieldDef{Name: "name"})
	if !s.Has("_id") {
		t.Fatal("pk must be part of the schema")
	}
}

func TestNewRecordsProvidedKeysOnly(t *testing.T) {
	c := testCollection()
	r, err := c.New(storage.Doc{"_id": "c1", "name": "Birthday"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !r.Provided("_id") || !r.Provided("name") {
		t.Error("caller-supplied keys must be provided")
	}
	if r.Provided("description") {
		t.Error("defaulted fields must not count as provided")
	}
	if r.String("description") != "none" {
		t.Errorf("description = %q, want schema default", r.String("description"))
	}
}

func TestNewRejectsUnknownKeys(t *testing.T) {
	c := testCollection()
	if _, err := c.New(storage.Doc{"bogus": 1}); err == nil {
		t.Fatal("unknown field must be rejected")
	}
}

func TestSaveRequiresPK(t *testing.T) {
	c := testCollection()
	r, _ := c.New(storage.Doc{"name": "Birthday"})
	if _, err := c.Save(context.Background(), r); err == nil {
		t.Fatal("save without pk must fail")
	}
}

func TestSaveInsertAppliesDefaultsAndCreated(t *testing.T) {
	c := testCollection()
	ctx := context.Background()

	r, _ := c.New(storage.Doc{"_id": "c1", "name": "Birthday"})
	saved, err := c.Save(ctx, r)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.String("name") != "Birthday" {
		t.Errorf("name = %q", saved.String("name"))
	}
	if saved.String("description") != "none" {
		t.Errorf("default not applied, description = %q", saved.String("description"))
	}
	created, ok := saved.Time("created")
	if !ok || !created.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("created = %v %v", created, ok)
	}
	// The saved record is canonical, so every stored field reads as provided.
	if !saved.Provided("description") || !saved.Provided("created") {
		t.Error("loaded records must mark stored fields provided")
	}
}

func TestSaveUpdateWritesOnlyProvidedFields(t *testing.T) {
	c := testCollection()
	ctx := context.Background()

	first, _ := c.New(storage.Doc{"_id": "c1", "name": "Birthday", "description": "cake day"})
	if _, err := c.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	edit, _ := c.New(storage.Doc{"_id": "c1", "description": "party day"})
	saved, err := c.Save(ctx, edit)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if saved.String("name") != "Birthday" {
		t.Errorf("update clobbered untouched field, name = %q", saved.String("name"))
	}
	if saved.String("description") != "party day" {
		t.Errorf("description = %q", saved.String("description"))
	}
	created, ok := saved.Time("created")
	if !ok || created.IsZero() {
		t.Error("created must survive updates")
	}
}

func TestSecondIdenticalSaveIsIdempotent(t *testing.T) {
	c := testCollection()
	ctx := context.Background()

	r, _ := c.New(storage.Doc{"_id": "c1", "name": "Birthday", "description": "cake day"})
	first, err := c.Save(ctx, r)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := c.Save(ctx, first)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.String("description") != "cake day" {
		t.Errorf("description reset to %q", second.String("description"))
	}
	firstCreated, _ := first.Time("created")
	secondCreated, _ := second.Time("created")
	if !firstCreated.Equal(secondCreated) {
		t.Errorf("created drifted: %v -> %v", firstCreated, secondCreated)
	}

	count, err := c.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("two saves of one record must keep exactly one document, count=%d", count)
	}
}

func TestGetAbsentIsNilNotError(t *testing.T) {
	c := testCollection()
	rec, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Fatal("absent record must be nil")
	}
}

func TestGetOrCreate(t *testing.T) {
	c := testCollection()
	ctx := context.Background()

	rec, err := c.GetOrCreate(ctx, "c9")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if rec.String("description") != "none" {
		t.Errorf("fresh record missing defaults: %q", rec.String("description"))
	}

	_ = rec.Set("name", "Holidays")
	if _, err := c.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := c.GetOrCreate(ctx, "c9")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if again.String("name") != "Holidays" {
		t.Errorf("existing record not returned, name = %q", again.String("name"))
	}
}

func TestNumericPKRoundTrip(t *testing.T) {
	schema := NewSchema("user", "_id", FieldDef{Name: "name"})
	c := NewCollection(storage.NewMemoryStore(), schema)
	ctx := context.Background()

	r, _ := c.New(storage.Doc{"_id": int64(12345), "name": "someone"})
	saved, err := c.Save(ctx, r)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	// Stored numbers come back as float64 but address the same key.
	if saved.Int64("_id") != 12345 {
		t.Errorf("_id = %d", saved.Int64("_id"))
	}
	loaded, err := c.Get(ctx, saved.PK())
	if err != nil {
		t.Fatalf("get by read-back pk: %v", err)
	}
	if loaded == nil || loaded.String("name") != "someone" {
		t.Fatalf("record not found by read-back pk: %+v", loaded)
	}
}

func TestFindAndCount(t *testing.T) {
	c := testCollection()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		r, _ := c.New(storage.Doc{"_id": id, "name": "batch"})
		if _, err := c.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	records, err := c.Find(ctx, storage.Doc{"name": "batch"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d", len(records))
	}
	if records[0].String("_id") != "a" || records[2].String("_id") != "c" {
		t.Errorf("order broken: %q %q", records[0].String("_id"), records[2].String("_id"))
	}

	n, err := c.Count(ctx, storage.Doc{"name": "batch"})
	if err != nil || n != 3 {
		t.Fatalf("count = %d, %v", n, err)
	}

	none, err := c.FindOne(ctx, storage.Doc{"name": "nope"})
	if err != nil || none != nil {
		t.Fatalf("find one absent = %+v, %v", none, err)
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	c := testCollection()
	ctx := context.Background()

	r, _ := c.New(storage.Doc{"_id": "gone"})
	if _, err := c.Save(ctx, r); err != nil {
		t.Fatal(err)
	}

	existed, err := c.Delete(ctx, "gone")
	if err != nil || !existed {
		t.Fatalf("delete = %v, %v", existed, err)
	}
	rec, err := c.Get(ctx, "gone")
	if err != nil || rec != nil {
		t.Fatalf("get after delete = %+v, %v", rec, err)
	}
	existed, err = c.Delete(ctx, "gone")
	if err != nil || existed {
		t.Fatalf("second delete = %v, %v", existed, err)
	}
}
