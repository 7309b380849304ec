package model

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/backostech/postcardbot/core/storage"
)

// createdField is auto-filled on first save when the schema declares it.
const createdField = "created"

// Record is one document bound to a schema. Fields set through Set are
// marked provided; only provided fields are written on save. Records loaded
// from the store mark every stored field provided.
type Record struct {
	schema   Schema
	values   map[string]any
	provided map[string]bool
}

func newRecord(schema Schema) *Record {
	return &Record{
		schema:   schema,
		values:   make(map[string]any, len(schema.Fields)),
		provided: make(map[string]bool, len(schema.Fields)),
	}
}

func loadRecord(schema Schema, doc storage.Doc) *Record {
	r := newRecord(schema)
	for _, f := range schema.Fields {
		if v, ok := doc[f.Name]; ok {
			r.values[f.Name] = v
			r.provided[f.Name] = true
		}
	}
	return r
}

// Set assigns a field value and marks it provided.
func (r *Record) Set(name string, value any) error {
	if !r.schema.Has(name) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, r.schema.Collection, name)
	}
	r.values[name] = value
	r.provided[name] = true
	return nil
}

// Provided reports whether the field was explicitly set or loaded.
func (r *Record) Provided(name string) bool {
	return r.provided[name]
}

// Value returns the raw field value, falling back to the schema default
// when the field was never provided.
func (r *Record) Value(name string) any {
	if r.provided[name] {
		return r.values[name]
	}
	return r.schema.defaultOf(name)
}

// String returns the field as a string, or "" when absent or mistyped.
func (r *Record) String(name string) string {
	if s, ok := r.Value(name).(string); ok {
		return s
	}
	return ""
}

// Int64 returns the field as int64, coercing the float64 form numbers take
// after a JSON round trip.
func (r *Record) Int64(name string) int64 {
	switch v := r.Value(name).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		if v == math.Trunc(v) {
			return int64(v)
		}
		return 0
	default:
		return 0
	}
}

// Bool returns the field as bool, or false when absent or mistyped.
func (r *Record) Bool(name string) bool {
	if b, ok := r.Value(name).(bool); ok {
		return b
	}
	return false
}

// Time parses an RFC 3339 field such as the auto-filled creation timestamp.
func (r *Record) Time(name string) (time.Time, bool) {
	s, ok := r.Value(name).(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PK returns the primary key value.
func (r *Record) PK() any {
	return r.Value(r.schema.PK)
}

// Collection binds a schema to a store and exposes the persistence
// operations of that document type.
type Collection struct {
	schema Schema
	store  storage.Store
	now    func() time.Time
}

// NewCollection creates a collection handle for the given schema.
func NewCollection(store storage.Store, schema Schema) *Collection {
	return &Collection{schema: schema, store: store, now: time.Now}
}

// Schema returns the bound schema.
func (c *Collection) Schema() Schema { return c.schema }

// New creates an unsaved record, marking exactly the given keys provided.
// Unknown keys are rejected. A nil values map yields an empty record whose
// reads fall back to schema defaults.
func (c *Collection) New(values storage.Doc) (*Record, error) {
	r := newRecord(c.schema)
	for name, v := range values {
		if err := r.Set(name, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Save upserts the record's provided fields and returns the stored
// canonical form read back from the store. Unprovided fields with declared
// defaults are written only when the document is first inserted, as is the
// creation timestamp when the schema declares a created field.
func (c *Collection) Save(ctx context.Context, r *Record) (*Record, error) {
	if !r.provided[c.schema.PK] {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingPK, c.schema.Collection, c.schema.PK)
	}
	pkVal := r.values[c.schema.PK]
	pk, err := pkString(pkVal)
	if err != nil {
		return nil, err
	}

	set := make(storage.Doc, len(r.provided))
	for name, ok := range r.provided {
		if ok {
			set[name] = r.values[name]
		}
	}

	setOnInsert := make(storage.Doc)
	for _, f := range c.schema.Fields {
		if r.provided[f.Name] || f.Default == nil {
			continue
		}
		setOnInsert[f.Name] = f.defaultValue()
	}
	if c.schema.Has(createdField) && !r.provided[createdField] {
		setOnInsert[createdField] = c.now().UTC().Format(time.RFC3339)
	}

	filter := storage.Doc{c.schema.PK: pkVal}
	if err := c.store.Upsert(ctx, c.schema.Collection, pk, filter, set, setOnInsert); err != nil {
		return nil, err
	}

	doc, err := c.store.Get(ctx, c.schema.Collection, pk)
	if err != nil {
		return nil, err
	}
	return loadRecord(c.schema, doc), nil
}

// Get loads a record by primary key. An absent record is (nil, nil), not
// an error; callers distinguish "missing" from store failures that way.
func (c *Collection) Get(ctx context.Context, pkVal any) (*Record, error) {
	pk, err := pkString(pkVal)
	if err != nil {
		return nil, err
	}
	doc, err := c.store.Get(ctx, c.schema.Collection, pk)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return loadRecord(c.schema, doc), nil
}

// GetOrCreate loads a record by primary key, inserting a fresh one with
// schema defaults when it does not exist yet.
func (c *Collection) GetOrCreate(ctx context.Context, pkVal any) (*Record, error) {
	rec, err := c.Get(ctx, pkVal)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	fresh, err := c.New(storage.Doc{c.schema.PK: pkVal})
	if err != nil {
		return nil, err
	}
	return c.Save(ctx, fresh)
}

// Delete removes a record by primary key. Reports whether it existed.
func (c *Collection) Delete(ctx context.Context, pkVal any) (bool, error) {
	pk, err := pkString(pkVal)
	if err != nil {
		return false, err
	}
	return c.store.Delete(ctx, c.schema.Collection, pk)
}

// All returns every record in the collection, in insertion order.
func (c *Collection) All(ctx context.Context) ([]*Record, error) {
	return c.Find(ctx, nil)
}

// Find returns records matching the filter, in insertion order.
func (c *Collection) Find(ctx context.Context, filter storage.Doc) ([]*Record, error) {
	docs, err := c.store.Find(ctx, c.schema.Collection, filter)
	if err != nil {
		return nil, err
	}
	records := make([]*Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, loadRecord(c.schema, doc))
	}
	return records, nil
}

// FindOne returns the first record matching the filter, or (nil, nil) when
// nothing matches.
func (c *Collection) FindOne(ctx context.Context, filter storage.Doc) (*Record, error) {
	doc, err := c.store.FindOne(ctx, c.schema.Collection, filter)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return loadRecord(c.schema, doc), nil
}

// Count reports how many records match the filter.
func (c *Collection) Count(ctx context.Context, filter storage.Doc) (int64, error) {
	return c.store.Count(ctx, c.schema.Collection, filter)
}
