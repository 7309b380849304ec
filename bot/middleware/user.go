// Package middleware resolves the acting user for every update and stashes
// the actor and locale on the request context.
package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/i18n"
	"github.com/backostech/postcardbot/bot/models"
	"github.com/backostech/postcardbot/core/logger"
	"github.com/backostech/postcardbot/core/storage"
	tghelpers "github.com/backostech/postcardbot/core/telegram/helpers"
)

// Options configures user resolution.
type Options struct {
	Users *models.Users
	// Superusers are always treated as superusers, merged with the stored
	// flag, regardless of what the document says.
	Superusers    []int64
	DefaultLocale string
}

// ResolveUser upserts the acting user on every update, reads back the
// canonical record, and exposes it under c.Get("actor") plus the effective
// locale under c.Get("locale"). Store failures abort the update; session
// state is untouched.
func ResolveUser(opts Options) tele.MiddlewareFunc {
	superusers := make(map[int64]struct{}, len(opts.Superusers))
	for _, id := range opts.Superusers {
		superusers[id] = struct{}{}
	}
	defaultLocale := opts.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = i18n.DefaultLocale
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || opts.Users == nil {
				c.Set("locale", defaultLocale)
				return next(c)
			}

			ctx := tghelpers.BuildContext(c)
			user, err := opts.Users.Save(ctx, storage.Doc{
				"id":            sender.ID,
				"first_name":    sender.FirstName,
				"last_name":     sender.LastName,
				"username":      sender.Username,
				"language_code": sender.LanguageCode,
				"is_active":     true,
			})
			if err != nil {
				logger.Error(ctx, "svc.users", "user.resolve.fail",
					slog.Int64("user_id", sender.ID),
					slog.String("err", err.Error()),
				)
				return err
			}

			if _, ok := superusers[user.ID]; ok {
				user.Superuser = true
			}

			locale := user.Locale()
			if locale == "" || !i18n.Has(locale) {
				locale = defaultLocale
			}

			c.Set("actor", user)
			c.Set("locale", locale)
			return next(c)
		}
	}
}

// ActorUser returns the resolved user, if any.
func ActorUser(c tele.Context) (*models.User, bool) {
	if v := c.Get("actor"); v != nil {
		if u, ok := v.(*models.User); ok {
			return u, true
		}
	}
	return nil, false
}

// Locale returns the effective locale stored by ResolveUser.
func Locale(c tele.Context) string {
	if v, ok := c.Get("locale").(string); ok && v != "" {
		return v
	}
	return i18n.DefaultLocale
}
