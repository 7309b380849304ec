package models

import (
	"context"

	"github.com/google/uuid"

	"github.com/backostech/postcardbot/core/model"
	"github.com/backostech/postcardbot/core/storage"
)

// PostCard is the typed view of one postcard template document. Image and
// Thumbnail are Telegram file ids.
type PostCard struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CategoryID  string
	Image       string
	Thumbnail   string
}

// PostCards is the postcard collection adapter.
type PostCards struct {
	c *model.Collection
}

// NewPostCards binds the postcard schema to a store.
func NewPostCards(store storage.Store) *PostCards {
	return &PostCards{c: model.NewCollection(store, PostCardSchema)}
}

func postcardFromRecord(r *model.Record) *PostCard {
	if r == nil {
		return nil
	}
	return &PostCard{
		ID:          r.String("_id"),
		Name:        r.String("name"),
		Description: r.String("description"),
		Active:      r.Bool("is_active"),
		CategoryID:  r.String("category_id"),
		Image:       r.String("image"),
		Thumbnail:   r.String("thumbnail"),
	}
}

// Create inserts a new postcard with a generated id.
func (s *PostCards) Create(ctx context.Context, categoryID, name, description, image, thumbnail string) (*PostCard, error) {
	rec, err := s.c.New(storage.Doc{
		"_id":         uuid.NewString(),
		"category_id": categoryID,
		"name":        name,
		"description": description,
		"image":       image,
		"thumbnail":   thumbnail,
	})
	if err != nil {
		return nil, err
	}
	saved, err := s.c.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	return postcardFromRecord(saved), nil
}

// Update writes the given fields on an existing postcard. A postcard that
// vanished in the meantime is (nil, nil); Save would re-insert it otherwise.
func (s *PostCards) Update(ctx context.Context, id string, set storage.Doc) (*PostCard, error) {
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
	return postcardFromRecord(saved), nil
}

// Get loads a postcard by id. Absent postcards are (nil, nil).
func (s *PostCards) Get(ctx context.Context, id string) (*PostCard, error) {
	rec, err := s.c.Get(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return postcardFromRecord(rec), nil
}

// ToggleStatus flips is_active. Returns (nil, nil) when the postcard
// vanished in the meantime.
func (s *PostCards) ToggleStatus(ctx context.Context, id string) (*PostCard, error) {
	pc, err := s.Get(ctx, id)
	if err != nil || pc == nil {
		return nil, err
	}
	return s.Update(ctx, id, storage.Doc{"is_active": !pc.Active})
}

// Delete removes a postcard. Reports whether it existed.
func (s *PostCards) Delete(ctx context.Context, id string) (bool, error) {
	return s.c.Delete(ctx, id)
}

// ByCategory returns postcards in a category, optionally only active ones.
func (s *PostCards) ByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]*PostCard, error) {
	filter := storage.Doc{"category_id": categoryID}
	if activeOnly {
		filter["is_active"] = true
	}
	return s.find(ctx, filter)
}

// Count reports the number of postcards matching the filter.
func (s *PostCards) Count(ctx context.Context, filter storage.Doc) (int64, error) {
	return s.c.Count(ctx, filter)
}

func (s *PostCards) find(ctx context.Context, filter storage.Doc) ([]*PostCard, error) {
	recs, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	cards := make([]*PostCard, 0, len(recs))
	for _, rec := range recs {
		cards = append(cards, postcardFromRecord(rec))
	}
	return cards, nil
}
