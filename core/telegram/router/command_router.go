package router

import (
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/core/logger"
	tg "github.com/backostech/postcardbot/core/telegram"
	"github.com/backostech/postcardbot/core/telegram/middleware"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	OnAdminReject     tele.HandlerFunc
	OnSuperuserReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
// Role checks read the actor resolved by the user middleware. A live
// conversation claims every command before its stateless handler, the same
// exclusivity the text route enforces; /cancel keeps its priority inside
// the conversation dispatcher.
func CommandRoutes(conv Conversations, reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOpts := middleware.AccessOptions{OnReject: opts.OnAdminReject}
	superOpts := middleware.AccessOptions{OnReject: opts.OnSuperuserReject}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		h = middleware.RecoverMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		if def.SuperuserOnly {
			h = middleware.RequireSuperuser(superOpts)(h)
		} else if def.AdminOnly {
			h = middleware.RequireAdmin(adminOpts)(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  guardConversation(conv, h),
		})
	}

	if logger.TWire != nil {
		logger.TWire.Info("tg.wire",
			slog.String("event", "complete"),
			slog.Int("commands", len(reg.Commands())),
			slog.Int("callbacks", len(reg.ListCallbacks())),
		)
	}

	return routes
}

func guardConversation(conv Conversations, next tele.HandlerFunc) tele.HandlerFunc {
	if conv == nil {
		return next
	}
	return func(c tele.Context) error {
		if conv.Active(c) {
			return handleWithSummary(c, "form", time.Now(), "", "", func() error {
				return conv.Dispatch(c)
			})
		}
		return next(c)
	}
}
