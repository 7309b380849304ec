package models

import (
	"context"
	"time"

	"github.com/backostech/postcardbot/core/model"
	"github.com/backostech/postcardbot/core/storage"
)

// User is the typed view of one user document.
type User struct {
	ID               int64
	FirstName        string
	LastName         string
	Username         string
	LanguageCode     string
	SelectedLanguage string
	Admin            bool
	Superuser        bool
	Active           bool
	Created          time.Time
}

// IsAdmin satisfies the access middleware actor contract. Superusers are
// admins too.
func (u *User) IsAdmin() bool { return u.Admin || u.Superuser }

// IsSuperuser satisfies the access middleware actor contract.
func (u *User) IsSuperuser() bool { return u.Superuser }

// Locale returns the user's effective language preference, if any.
func (u *User) Locale() string {
	if u.SelectedLanguage != "" {
		return u.SelectedLanguage
	}
	return u.LanguageCode
}

// Users is the user collection adapter.
type Users struct {
	c *model.Collection
}

// NewUsers binds the user schema to a store.
func NewUsers(store storage.Store) *Users {
	return &Users{c: model.NewCollection(store, UserSchema)}
}

func userFromRecord(r *model.Record) *User {
	if r == nil {
		return nil
	}
	u := &User{
		ID:               r.Int64("id"),
		FirstName:        r.String("first_name"),
		LastName:         r.String("last_name"),
		Username:         r.String("username"),
		LanguageCode:     r.String("language_code"),
		SelectedLanguage: r.String("selected_language"),
		Admin:            r.Bool("is_admin"),
		Superuser:        r.Bool("is_superuser"),
		Active:           r.Bool("is_active"),
	}
	if t, ok := r.Time("created"); ok {
		u.Created = t
	}
	return u
}

// Save upserts the given fields keyed by "id" and returns the canonical
// stored user. Omitted fields keep their stored values.
func (s *Users) Save(ctx context.Context, values storage.Doc) (*User, error) {
	rec, err := s.c.New(values)
	if err != nil {
		return nil, err
	}
	saved, err := s.c.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	return userFromRecord(saved), nil
}

// Get loads a user by Telegram id. Absent users are (nil, nil).
func (s *Users) Get(ctx context.Context, id int64) (*User, error) {
	rec, err := s.c.Get(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return userFromRecord(rec), nil
}

// SetAdmin flips the admin flag for an existing user.
func (s *Users) SetAdmin(ctx context.Context, id int64, admin bool) (*User, error) {
	return s.Save(ctx, storage.Doc{"id": id, "is_admin": admin})
}

// SetLanguage stores the user's selected language.
func (s *Users) SetLanguage(ctx context.Context, id int64, lang string) (*User, error) {
	return s.Save(ctx, storage.Doc{"id": id, "selected_language": lang})
}

// Admins returns all users with the admin flag set.
func (s *Users) Admins(ctx context.Context) ([]*User, error) {
	return s.find(ctx, storage.Doc{"is_admin": true})
}

// All returns every registered user.
func (s *Users) All(ctx context.Context) ([]*User, error) {
	return s.find(ctx, nil)
}

// Count reports the number of registered users.
func (s *Users) Count(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, nil)
}

func (s *Users) find(ctx context.Context, filter storage.Doc) ([]*User, error) {
	recs, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}
