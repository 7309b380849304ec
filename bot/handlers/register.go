package handlers

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/backostech/postcardbot/core/telegram"
	"github.com/backostech/postcardbot/core/telegram/commands"
	"github.com/backostech/postcardbot/core/telegram/state"
)

// Cancel aborts any in-progress conversation and returns to the main
// menu. It is also the registry handler for /cancel outside a form.
func (h *Handlers) Cancel(c tele.Context) error {
	h.Sessions.Cancel(sessionKey(c))
	return h.Outbox.SendText(c, h.tr(c, "operation_cancelled"), &tele.SendOptions{
		ReplyMarkup: h.mainMenuKeyboard(c),
	})
}

// Register binds commands, reply buttons, and callbacks on the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Start the bot",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     h.Cancel,
		Description: "Cancel the current operation",
	})

	buttons := map[string]tele.HandlerFunc{
		BtnSendPostcard:   h.SendPostCardMenu,
		BtnSettings:       h.Settings,
		BtnChangeLanguage: h.ChangeLanguageMenu,
		BtnMainMenu:       h.MainMenu,

		BtnAdminPanel:     h.AdminPanel,
		BtnBackAdminPanel: h.AdminPanel,
		BtnPostcards:      h.CategoriesMenu,
		BtnUsers:          h.UsersMenu,
		BtnStats:          h.StatsMenu,
		BtnAdministrators: h.AdministratorsMenu,

		BtnAddCategory:      h.StartAddCategory,
		BtnBackToCategories: h.CategoriesMenu,
		BtnAddAdministrator: h.StartAddAdmin,

		BtnStatsUsers:     h.UserStats,
		BtnStatsPostcards: h.PostCardStats,
		BtnStatsAdmins:    h.AdminStats,
	}
	for label, handler := range buttons {
		reg.RegisterButton(label, handler)
	}

	callbackHandlers := map[string]tele.HandlerFunc{
		"change_language": h.ChangeLanguage,

		"category":      h.PickCategory,
		"send_postcard": h.PickPostCard,

		"categorical_postcards":   h.CategoryPostCards,
		"add_postcard":            h.StartAddPostCard,
		"edit_category":           h.EditCategory,
		"delete_category":         h.DeleteCategory,
		"confirm_delete_category": h.ConfirmDeleteCategory,
		"cancel_delete_category":  h.CancelDeleteCategory,
		"change_category_status":  h.ChangeCategoryStatus,

		"edit_postcard":           h.EditPostCard,
		"delete_postcard":         h.DeletePostCard,
		"confirm_delete_postcard": h.ConfirmDeletePostCard,
		"cancel_delete_postcard":  h.CancelDeletePostCard,
		"change_postcard_status":  h.ChangePostCardStatus,

		"remove_admin": h.RemoveAdmin,
	}
	for key, handler := range callbackHandlers {
		_ = reg.RegisterCallback(key, handler)
	}

	reg.SetTextFallback(h.UnknownText)
	reg.SetCallbackNotFound(h.UnknownAction)
}

// UnknownText answers text that matched nothing.
func (h *Handlers) UnknownText(c tele.Context) error {
	return h.Outbox.SendText(c, h.tr(c, "unknown_text"))
}

// UnexpectedPhoto answers a photo sent outside a form.
func (h *Handlers) UnexpectedPhoto(c tele.Context) error {
	return h.Outbox.SendText(c, h.tr(c, "unexpected_photo"))
}

// UnknownAction answers callbacks whose key is not registered.
func (h *Handlers) UnknownAction(c tele.Context) error {
	return h.Outbox.SendText(c, h.tr(c, "unknown_action"))
}

// AccessDenied answers privileged commands issued by regular users.
func (h *Handlers) AccessDenied(c tele.Context) error {
	return h.Outbox.SendText(c, h.tr(c, "access_denied"))
}

// RegisterRules builds the conversation rules table. Must run after New
// and before the bot starts dispatching.
func (h *Handlers) RegisterRules() {
	h.Rules = state.NewRules(h.Sessions, func(c tele.Context, sess *state.Session) error {
		return h.Cancel(c)
	})
	h.registerCategoryRules()
	h.registerPostCardRules()
	h.registerSendRules()
	h.registerAdminRules()
}
