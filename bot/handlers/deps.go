// Package handlers wires the postcard bot's menus, admin flows, and
// conversation forms on top of the core routing and state layers.
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/i18n"
	botmw "github.com/backostech/postcardbot/bot/middleware"
	"github.com/backostech/postcardbot/bot/models"
	"github.com/backostech/postcardbot/core/telegram/format"
	"github.com/backostech/postcardbot/core/telegram/helpers"
	"github.com/backostech/postcardbot/core/telegram/state"
)

// Conversation groups. All linear; branching flows finish and re-enter.
var (
	CategoryAddForm  = state.NewGroup("category_add", "name", "description")
	CategoryEditForm = state.NewGroup("category_edit", "name", "description")
	PostCardAddForm  = state.NewGroup("postcard_add", "name", "description", "image")
	PostCardEditForm = state.NewGroup("postcard_edit", "name", "description", "image")
	SendPostCardForm = state.NewGroup("send_postcard", "from", "to", "confirm")
	AdminAddForm     = state.NewGroup("admin_add", "id")
)

// Deps carries everything the handlers need. The bot app builds one Deps
// and registers the handlers on its registry and rules table.
type Deps struct {
	Users      *models.Users
	Categories *models.Categories
	PostCards  *models.PostCards

	Sessions *state.Manager
	Rules    *state.Rules
	Outbox   helpers.Outbox

	Languages     []i18n.Language
	DefaultLocale string

	// Fetch downloads a Telegram file by id. Left nil it goes through the
	// bot API; tests substitute a local source.
	Fetch func(c tele.Context, fileID string) ([]byte, error)
}

// Handlers exposes every bot handler over shared dependencies.
type Handlers struct {
	Deps
}

// New builds the handler set.
func New(d Deps) *Handlers {
	if d.DefaultLocale == "" {
		d.DefaultLocale = i18n.DefaultLocale
	}
	if len(d.Languages) == 0 {
		d.Languages = i18n.DefaultLanguages()
	}
	if d.Fetch == nil {
		d.Fetch = downloadFile
	}
	return &Handlers{Deps: d}
}

func (h *Handlers) fetch(c tele.Context, fileID string) ([]byte, error) {
	return h.Fetch(c, fileID)
}

// Active reports whether the sender has a conversation in progress.
func (h *Handlers) Active(c tele.Context) bool {
	return h.Sessions.InProgress(sessionKey(c))
}

// Dispatch routes the update into the sender's live conversation.
func (h *Handlers) Dispatch(c tele.Context) error {
	sess, ok := h.Sessions.Peek(sessionKey(c))
	if !ok {
		return nil
	}
	return h.Rules.Dispatch(c, sess)
}

func sessionKey(c tele.Context) state.Key {
	key := state.Key{}
	if user := c.Sender(); user != nil {
		key.UserID = user.ID
	}
	if chat := c.Chat(); chat != nil {
		key.ChatID = chat.ID
	}
	return key
}

// ctx returns the request-scoped logging context for store calls.
func (h *Handlers) ctx(c tele.Context) context.Context {
	return helpers.BuildContext(c)
}

// tr resolves a catalog key in the sender's locale.
func (h *Handlers) tr(c tele.Context, key string) string {
	return i18n.T(botmw.Locale(c), key)
}

func (h *Handlers) isAdmin(c tele.Context) bool {
	u, ok := botmw.ActorUser(c)
	return ok && u.IsAdmin()
}

func (h *Handlers) isSuperuser(c tele.Context) bool {
	u, ok := botmw.ActorUser(c)
	return ok && u.IsSuperuser()
}

// md escapes user-entered text before it lands inside a Markdown message.
func md(s string) string {
	escaped, err := format.EscapeMarkdown(s, format.MarkdownV1)
	if err != nil {
		return s
	}
	return escaped
}

func isSkip(c tele.Context) bool {
	return c.Text() == "/skip"
}

func downloadFile(c tele.Context, fileID string) ([]byte, error) {
	rc, err := c.Bot().File(&tele.File{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func photoFromBytes(data []byte) *tele.Photo {
	return &tele.Photo{File: tele.FromReader(bytes.NewReader(data))}
}
