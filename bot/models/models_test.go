package models

import (
	"context"
	"testing"

	"github.com/backostech/postcardbot/core/storage"
)

func TestUsersSaveMergesFlags(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(storage.NewMemoryStore())

	u, err := users.Save(ctx, storage.Doc{
		"id":         int64(42),
		"first_name": "Abebe",
		"is_active":  true,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if u.ID != 42 || u.FirstName != "Abebe" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Admin || u.Superuser {
		t.Fatalf("fresh user must not carry role flags: %+v", u)
	}
	if !u.Active {
		t.Fatal("is_active not stored")
	}

	// Promoting must not wipe identity fields.
	promoted, err := users.SetAdmin(ctx, 42, true)
	if err != nil {
		t.Fatalf("set admin: %v", err)
	}
	if !promoted.Admin {
		t.Fatal("admin flag not set")
	}
	if promoted.FirstName != "Abebe" {
		t.Fatalf("identity fields reset on partial save: %+v", promoted)
	}

	admins, err := users.Admins(ctx)
	if err != nil {
		t.Fatalf("admins: %v", err)
	}
	if len(admins) != 1 || admins[0].ID != 42 {
		t.Fatalf("admins = %+v", admins)
	}
}

func TestUserLocalePreference(t *testing.T) {
	u := &User{LanguageCode: "am"}
	if got := u.Locale(); got != "am" {
		t.Fatalf("locale = %q", got)
	}
	u.SelectedLanguage = "en"
	if got := u.Locale(); got != "en" {
		t.Fatalf("selected language must win, got %q", got)
	}
}

func TestSuperuserIsAdmin(t *testing.T) {
	u := &User{Superuser: true}
	if !u.IsAdmin() {
		t.Fatal("superuser must pass admin checks")
	}
}

func TestCategoriesLifecycle(t *testing.T) {
	ctx := context.Background()
	cats := NewCategories(storage.NewMemoryStore())

	created, err := cats.Create(ctx, "Holidays", "Seasonal greetings")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create must assign an id")
	}
	if !created.Active {
		t.Fatal("new categories default to active")
	}

	toggled, err := cats.ToggleStatus(ctx, created.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Active {
		t.Fatal("toggle did not deactivate")
	}

	active, err := cats.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated category still listed: %+v", active)
	}

	edited, err := cats.Update(ctx, created.ID, storage.Doc{"name": "Winter holidays"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if edited.Name != "Winter holidays" || edited.Description != "Seasonal greetings" {
		t.Fatalf("partial update touched other fields: %+v", edited)
	}

	existed, err := cats.Delete(ctx, created.ID)
	if err != nil || !existed {
		t.Fatalf("delete = %v, %v", existed, err)
	}
	gone, err := cats.Get(ctx, created.ID)
	if err != nil || gone != nil {
		t.Fatalf("get after delete = %+v, %v", gone, err)
	}
}

func TestUpdateVanishedCategoryNotResurrected(t *testing.T) {
	ctx := context.Background()
	cats := NewCategories(storage.NewMemoryStore())

	created, err := cats.Create(ctx, "Holidays", "Seasonal greetings")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cats.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	edited, err := cats.Update(ctx, created.ID, storage.Doc{"name": "Renamed"})
	if err != nil || edited != nil {
		t.Fatalf("update on deleted = %+v, %v", edited, err)
	}
	count, err := cats.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("update re-inserted a deleted category, count=%d", count)
	}
}

func TestUpdateVanishedPostCardNotResurrected(t *testing.T) {
	ctx := context.Background()
	cards := NewPostCards(storage.NewMemoryStore())

	created, err := cards.Create(ctx, "cat-1", "Sunrise", "Warm wishes", "file-1", "thumb-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cards.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	edited, err := cards.Update(ctx, created.ID, storage.Doc{"name": "Renamed"})
	if err != nil || edited != nil {
		t.Fatalf("update on deleted = %+v, %v", edited, err)
	}
	count, err := cards.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("update re-inserted a deleted postcard, count=%d", count)
	}
}

func TestPostCardsByCategory(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	cards := NewPostCards(store)

	a, err := cards.Create(ctx, "cat-1", "Sunrise", "Warm wishes", "file-1", "thumb-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cards.Create(ctx, "cat-2", "Moon", "Good night", "file-2", "thumb-2"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cards.ToggleStatus(ctx, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	all, err := cards.ByCategory(ctx, "cat-1", false)
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Sunrise" {
		t.Fatalf("by category = %+v", all)
	}

	active, err := cards.ByCategory(ctx, "cat-1", true)
	if err != nil {
		t.Fatalf("by category active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("inactive postcard served to users: %+v", active)
	}

	vanished, err := cards.ToggleStatus(ctx, "missing-id")
	if err != nil || vanished != nil {
		t.Fatalf("toggle on missing = %+v, %v", vanished, err)
	}
}
