package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/core/telegram/keyboard"
)

// Reply-keyboard button labels. These double as registry lookup keys, so
// they stay in the default locale.
const (
	BtnSendPostcard   = "📬 Send postcard"
	BtnSettings       = "⚙️ Settings"
	BtnChangeLanguage = "🌐 Change language"
	BtnMainMenu       = "🔙🏠 Main menu"

	BtnAdminPanel     = "🔐 Admin panel"
	BtnBackAdminPanel = "🔙🔐 Admin panel"
	BtnPostcards      = "📦 Postcards"
	BtnUsers          = "👥 Users"
	BtnStats          = "📊 Stats"
	BtnAdministrators = "👤 Administrators"

	BtnAddCategory      = "➕📁 Add category"
	BtnBackToCategories = "🔙📁 Back to categories"
	BtnAddAdministrator = "➕👤 Add Administrator"

	BtnStatsUsers     = "👥📈 Users"
	BtnStatsPostcards = "📦📈 Postcards"
	BtnStatsAdmins    = "👤📈 Administrators"
)

// Inline button labels shown inside listings.
const (
	lblEdit       = "📝 Edit"
	lblDelete     = "🗑 Delete"
	lblYes        = "✅ Yes, delete"
	lblNo         = "❌ No, cancel"
	lblActivate   = "✅ Activate"
	lblDeactivate = "❌ Deactivate"
	lblRemove     = "❌ Remove"
	lblUseIt      = "📬 Use this template"
	lblConfirm    = "✅ Confirm"
	lblCancel     = "❌ Cancel"
	lblAddCard    = "➕📦 Add postcard"
)

func (h *Handlers) mainMenuKeyboard(c tele.Context) *tele.ReplyMarkup {
	rows := [][]string{
		{BtnSendPostcard},
		{BtnSettings},
	}
	if h.isAdmin(c) {
		rows = append(rows, []string{BtnAdminPanel})
	}
	return keyboard.ReplyButtons(rows...)
}

func (h *Handlers) settingsKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnChangeLanguage},
		[]string{BtnMainMenu},
	)
}

func (h *Handlers) adminPanelKeyboard(c tele.Context) *tele.ReplyMarkup {
	rows := [][]string{
		{BtnPostcards},
		{BtnUsers, BtnStats},
	}
	if h.isSuperuser(c) {
		rows = append(rows, []string{BtnAdministrators})
	}
	rows = append(rows, []string{BtnMainMenu})
	return keyboard.ReplyButtons(rows...)
}

func (h *Handlers) categoriesKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnAddCategory},
		[]string{BtnBackAdminPanel},
	)
}

func (h *Handlers) postcardsKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnBackToCategories},
	)
}

func (h *Handlers) administratorsKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnAddAdministrator},
		[]string{BtnBackAdminPanel},
	)
}

func (h *Handlers) statsKeyboard(c tele.Context) *tele.ReplyMarkup {
	rows := [][]string{
		{BtnStatsPostcards},
		{BtnStatsUsers},
	}
	if h.isSuperuser(c) {
		rows = append(rows, []string{BtnStatsAdmins})
	}
	rows = append(rows, []string{BtnBackAdminPanel})
	return keyboard.ReplyButtons(rows...)
}

func (h *Handlers) languageMarkup() *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(h.Languages))
	for _, lang := range h.Languages {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   lang.Name,
			Unique: "change_language",
			Data:   lang.Code,
		})
	}
	return keyboard.InlineButtons(buttons)
}
