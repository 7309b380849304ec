package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/core/logger"
)

// Actor describes the acting user as resolved by an upstream middleware.
// The resolved actor is expected under c.Get("actor").
type Actor interface {
	IsAdmin() bool
	IsSuperuser() bool
}

// ActorFrom extracts the resolved actor from the request context, if any.
func ActorFrom(c tele.Context) (Actor, bool) {
	if v := c.Get("actor"); v != nil {
		if a, ok := v.(Actor); ok {
			return a, true
		}
	}
	return nil, false
}

// AccessOptions configures rejection behaviour for access middlewares.
type AccessOptions struct {
	OnReject tele.HandlerFunc
}

// RequireAdmin allows only admins and superusers through.
func RequireAdmin(opts AccessOptions) tele.MiddlewareFunc {
	return requireRole("admin", opts, func(a Actor) bool {
		return a.IsAdmin() || a.IsSuperuser()
	})
}

// RequireSuperuser allows only superusers through.
func RequireSuperuser(opts AccessOptions) tele.MiddlewareFunc {
	return requireRole("superuser", opts, func(a Actor) bool {
		return a.IsSuperuser()
	})
}

func requireRole(role string, opts AccessOptions, allowed func(Actor) bool) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			actor, ok := ActorFrom(c)
			if ok && allowed(actor) {
				return next(c)
			}

			attrs := []slog.Attr{
				slog.String("event", "tg.access_denied"),
				slog.String("role", role),
			}
			if user := c.Sender(); user != nil {
				attrs = append(attrs, slog.Int64("user_id", user.ID))
			}
			logger.TG.LogAttrs(logger.Background(), slog.LevelWarn, "access denied", attrs...)

			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
