package models

import (
	"context"

	"github.com/google/uuid"

	"github.com/backostech/postcardbot/core/model"
	"github.com/backostech/postcardbot/core/storage"
)

// Category is the typed view of one category document.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
}

// Categories is the category collection adapter.
type Categories struct {
	c *model.Collection
}

// NewCategories binds the category schema to a store.
func NewCategories(store storage.Store) *Categories {
	return &Categories{c: model.NewCollection(store, CategorySchema)}
}

func categoryFromRecord(r *model.Record) *Category {
	if r == nil {
		return nil
	}
	return &Category{
		ID:          r.String("_id"),
		Name:        r.String("name"),
		Description: r.String("description"),
		Active:      r.Bool("is_active"),
	}
}

// Create inserts a new category with a generated id.
func (s *Categories) Create(ctx context.Context, name, description string) (*Category, error) {
	rec, err := s.c.New(storage.Doc{
		"_id":         uuid.NewString(),
		"name":        name,
		"description": description,
	})
	if err != nil {
		return nil, err
	}
	saved, err := s.c.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	return categoryFromRecord(saved), nil
}

// Update writes the given fields on an existing category. A category that
// vanished in the meantime is (nil, nil); Save would re-insert it otherwise.
func (s *Categories) Update(ctx context.Context, id string, set storage.Doc) (*Category, error) {
	existing, err := s.c.Get(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	values := storage.Doc{"_id": id}
	for k, v := range set {
		values[k] = v
	}
	rec, err := s.c.New(values)
	if err != nil {
		return nil, err
	}
	saved, err := s.c.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	return categoryFromRecord(saved), nil
}

// Get loads a category by id. Absent categories are (nil, nil).
func (s *Categories) Get(ctx context.Context, id string) (*Category, error) {
	rec, err := s.c.Get(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return categoryFromRecord(rec), nil
}

// ToggleStatus flips is_active. Returns (nil, nil) when the category
// vanished in the meantime.
func (s *Categories) ToggleStatus(ctx context.Context, id string) (*Category, error) {
	cat, err := s.Get(ctx, id)
	if err != nil || cat == nil {
		return nil, err
	}
	return s.Update(ctx, id, storage.Doc{"is_active": !cat.Active})
}

// Delete removes a category. Reports whether it existed.
func (s *Categories) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.Delete(ctx, id)
}

// All returns every category in insertion order.
func (s *Categories) All(ctx context.Context) ([]*Category, error) {
	return s.find(ctx, nil)
}

// Active returns categories visible to end users.
func (s *Categories) Active(ctx context.Context) ([]*Category, error) {
	return s.find(ctx, storage.Doc{"is_active": true})
}

// Count reports the number of categories.
func (s *Categories) Count(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, nil)
}

func (s *Categories) find(ctx context.Context, filter storage.Doc) ([]*Category, error) {
	recs, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	cats := make([]*Category, 0, len(recs))
	for _, rec := range recs {
		cats = append(cats, categoryFromRecord(rec))
	}
	return cats, nil
}
