// Package models defines the bot's document types as schema descriptors
// over the generic model layer, plus typed adapters for handler code.
package models

import "github.com/backostech/postcardbot/core/model"

// UserSchema describes the user collection, keyed by Telegram id.
var UserSchema = model.NewSchema("user", "id",
	model.FieldDef{Name: "first_name"},
	model.FieldDef{Name: "last_name"},
	model.FieldDef{Name: "username"},
	model.FieldDef{Name: "language_code"},
	model.FieldDef{Name: "selected_language"},
	model.FieldDef{Name: "is_admin", Default: false},
	model.FieldDef{Name: "is_superuser", Default: false},
	model.FieldDef{Name: "is_active", Default: true},
	model.FieldDef{Name: "created"},
)

// CategorySchema describes postcard categories, keyed by generated uuid.
var CategorySchema = model.NewSchema("category", "_id",
	model.FieldDef{Name: "name"},
	model.FieldDef{Name: "description"},
	model.FieldDef{Name: "is_active", Default: true},
	model.FieldDef{Name: "created"},
)

// PostCardSchema describes postcard templates. Image and thumbnail hold
// Telegram file references, not raw bytes.
var PostCardSchema = model.NewSchema("postcard", "_id",
	model.FieldDef{Name: "name"},
	model.FieldDef{Name: "description"},
	model.FieldDef{Name: "is_active", Default: true},
	model.FieldDef{Name: "category_id"},
	model.FieldDef{Name: "image"},
	model.FieldDef{Name: "thumbnail"},
	model.FieldDef{Name: "created"},
)
