package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/core/telegram/keyboard"
)

// AdminPanel shows the admin panel submenu. Non-admins are ignored; the
// button never appears on their keyboard in the first place.
func (h *Handlers) AdminPanel(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	return h.Outbox.SendText(c, h.tr(c, "admin_panel_title"), &tele.SendOptions{
		ReplyMarkup: h.adminPanelKeyboard(c),
	})
}

// UsersMenu shows the users submenu.
func (h *Handlers) UsersMenu(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	return h.Outbox.SendText(c, h.tr(c, "users_title"), &tele.SendOptions{
		ReplyMarkup: keyboard.ReplyButtons([]string{BtnBackAdminPanel}),
	})
}

// StatsMenu shows the stats submenu.
func (h *Handlers) StatsMenu(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	return h.Outbox.SendText(c, h.tr(c, "stats_title"), &tele.SendOptions{
		ReplyMarkup: h.statsKeyboard(c),
	})
}
