package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	ctxKeyLogger ctxKey = iota
	ctxKeyRID
	ctxKeyUserID
	ctxKeyChatID
	ctxKeyUpdateID
	ctxKeyHandler
)

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, logg *slog.Logger) context.Context {
	if logg == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyLogger, logg)
}

// FromContext extracts the request-scoped logger, falling back to nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	if logg, ok := ctx.Value(ctxKeyLogger).(*slog.Logger); ok {
		return logg
	}
	return nil
}

// WithRID attaches a request correlation identifier to ctx.
func WithRID(ctx context.Context, rid string) context.Context {
	if rid == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyRID, rid)
}

// RIDFrom returns the correlation identifier stored in ctx, if any.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(ctxKeyRID).(string); ok {
		return rid
	}
	return ""
}

// WithUpdateMeta attaches update, user, and chat identifiers in one call.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	ctx = WithUpdateID(ctx, updateID)
	ctx = WithUserID(ctx, userID)
	return WithChatID(ctx, chatID)
}

// WithUserID attaches the acting Telegram user identifier to ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	if userID == 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// UserIDFrom returns the user identifier stored in ctx.
func UserIDFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ctxKeyUserID).(int64); ok {
		return id
	}
	return 0
}

// WithChatID attaches the chat identifier to ctx.
func WithChatID(ctx context.Context, chatID int64) context.Context {
	if chatID == 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyChatID, chatID)
}

// ChatIDFrom returns the chat identifier stored in ctx.
func ChatIDFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ctxKeyChatID).(int64); ok {
		return id
	}
	return 0
}

// WithUpdateID attaches the Telegram update identifier to ctx.
func WithUpdateID(ctx context.Context, updateID int) context.Context {
	if updateID == 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyUpdateID, updateID)
}

// UpdateIDFrom returns the update identifier stored in ctx.
func UpdateIDFrom(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ctxKeyUpdateID).(int); ok {
		return id
	}
	return 0
}

// WithHandler records the handler name responsible for the update.
func WithHandler(ctx context.Context, handler string) context.Context {
	if handler == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyHandler, handler)
}

// HandlerFrom returns the handler name stored in ctx.
func HandlerFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if h, ok := ctx.Value(ctxKeyHandler).(string); ok {
		return h
	}
	return ""
}
