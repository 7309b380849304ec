package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/backostech/postcardbot/core/telegram"
	"github.com/backostech/postcardbot/core/telegram/middleware"
)

// Conversations is the minimal interface for in-progress form dialogs.
// An active conversation claims every update from its session before
// command and button routing gets a chance.
type Conversations interface {
	Active(c tele.Context) bool
	Dispatch(c tele.Context) error
}

// TextOptions controls fallback behaviour for text and photo updates.
type TextOptions struct {
	UnknownText     tele.HandlerFunc
	UnexpectedPhoto tele.HandlerFunc
}

// TextRoutes builds handlers for text and photo routing. Text goes through
// the conversation layer first, then command lookup, then reply-keyboard
// button lookup, then the registered fallback.
func TextRoutes(conv Conversations, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if conv != nil && conv.Active(c) {
			return handleWithSummary(c, "form", start, "", "", func() error {
				return conv.Dispatch(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
			if btn, ok := reg.LookupButton(text); ok && btn != nil {
				return handleWithSummary(c, "button."+normalizeHandlerName(text), start, "", "", func() error {
					return btn(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	photoHandler := func(c tele.Context) error {
		start := time.Now()
		if conv != nil && conv.Active(c) {
			return handleWithSummary(c, "form_photo", start, "", "", func() error {
				return conv.Dispatch(c)
			})
		}
		if opts.UnexpectedPhoto != nil {
			return handleWithSummary(c, "unexpected_photo", start, "", "", func() error {
				return opts.UnexpectedPhoto(c)
			})
		}
		logHandlerSummary(c, "unexpected_photo", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(photoHandler)),
		},
	}
}
