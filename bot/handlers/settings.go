package handlers

import tele "gopkg.in/telebot.v4"

// Settings shows the settings submenu.
func (h *Handlers) Settings(c tele.Context) error {
	return h.Outbox.SendText(c, h.tr(c, "settings_title"), &tele.SendOptions{
		ReplyMarkup: h.settingsKeyboard(),
	})
}

// ChangeLanguageMenu shows the inline language picker.
func (h *Handlers) ChangeLanguageMenu(c tele.Context) error {
	return h.Outbox.SendMD(c, h.tr(c, "select_language"), h.languageMarkup())
}
