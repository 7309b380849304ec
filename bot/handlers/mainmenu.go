package handlers

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	botmw "github.com/backostech/postcardbot/bot/middleware"
	"github.com/backostech/postcardbot/core/telegram/callbacks"
)

// Start greets the user with the welcome text, the language picker, and
// the main menu keyboard.
func (h *Handlers) Start(c tele.Context) error {
	name := ""
	if user := c.Sender(); user != nil {
		name = user.FirstName
	}
	welcome := fmt.Sprintf(h.tr(c, "welcome"), md(name))

	if err := h.Outbox.SendMD(c, welcome, h.mainMenuKeyboard(c)); err != nil {
		return err
	}
	return h.Outbox.SendMD(c, h.tr(c, "select_language"), h.languageMarkup())
}

// MainMenu returns to the main menu keyboard.
func (h *Handlers) MainMenu(c tele.Context) error {
	return h.Start(c)
}

// ChangeLanguage handles the language picker callback. The payload is the
// locale code; the preference lands on the user record.
func (h *Handlers) ChangeLanguage(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	code := callbacks.CallbackPayload(c)
	if code == "" {
		return h.Outbox.SendText(c, h.tr(c, "unknown_action"))
	}

	user, err := h.Users.SetLanguage(h.ctx(c), sender.ID, code)
	if err != nil {
		return err
	}
	if prev, ok := botmw.ActorUser(c); ok && prev.Superuser {
		user.Superuser = true
	}

	// Refresh the stashed actor and locale so the acknowledgement already
	// speaks the new language.
	c.Set("actor", user)
	c.Set("locale", code)

	_ = c.Edit(&tele.ReplyMarkup{})
	return h.Outbox.SendText(c, h.tr(c, "language_changed"))
}
