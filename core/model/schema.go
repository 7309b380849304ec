// Package model layers named schemas and partial-update semantics on top of
// the document store. A Record tracks which fields the caller actually
// provided, so saving an edited record only writes the touched fields while
// first-time saves fill in declared defaults.
package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// FieldDef declares a single schema field and its insert-time default.
// A nil default means the field is simply absent until someone provides it.
// A func() any default is invoked each time a fresh value is needed.
type FieldDef struct {
	Name    string
	Default any
}

func (f FieldDef) defaultValue() any {
	if producer, ok := f.Default.(func() any); ok {
		return producer()
	}
	return f.Default
}

// Schema describes one collection: its name, its primary key field, and the
// full set of fields a record may carry.
type Schema struct {
	Collection string
	PK         string
	Fields     []FieldDef
}

// ErrUnknownField is returned when setting or reading a field the schema
// does not declare.
var ErrUnknownField = errors.New("model: unknown field")

// ErrMissingPK is returned when saving a record whose primary key was never
// provided.
var ErrMissingPK = errors.New("model: primary key not provided")

// NewSchema builds a schema, forcing the primary key into the field set if
// the caller did not list it.
func NewSchema(collection, pk string, fields ...FieldDef) Schema {
	s := Schema{Collection: collection, PK: pk, Fields: fields}
	if !s.Has(pk) {
		s.Fields = append([]FieldDef{{Name: pk}}, s.Fields...)
	}
	return s
}

// Has reports whether the schema declares the named field.
func (s Schema) Has(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (s Schema) defaultOf(name string) any {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.defaultValue()
		}
	}
	return nil
}

// pkString renders a primary key value as the store's string key. Numeric
// keys keep their integer form so Telegram ids written as int64 and read
// back as float64 address the same document.
func pkString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return "", ErrMissingPK
		}
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10), nil
		}
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case nil:
		return "", ErrMissingPK
	default:
		return "", fmt.Errorf("model: unsupported primary key type %T", v)
	}
}
