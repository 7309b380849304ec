package handlers

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/models"
	"github.com/backostech/postcardbot/core/telegram/callbacks"
	"github.com/backostech/postcardbot/core/telegram/keyboard"
	"github.com/backostech/postcardbot/core/telegram/state"
)

func adminDetail(tpl string, u *models.User) string {
	username := u.Username
	if username == "" {
		username = "-"
	}
	return fmt.Sprintf(tpl, md(u.FirstName), md(u.LastName), username, u.Created.Format("2006-01-02"))
}

// AdministratorsMenu lists the current administrators with removal
// buttons. Superusers only.
func (h *Handlers) AdministratorsMenu(c tele.Context) error {
	if !h.isSuperuser(c) {
		return nil
	}
	if err := h.Outbox.SendText(c, h.tr(c, "administrators_title"), &tele.SendOptions{
		ReplyMarkup: h.administratorsKeyboard(),
	}); err != nil {
		return err
	}

	admins, err := h.Users.Admins(h.ctx(c))
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return h.Outbox.SendText(c, h.tr(c, "no_admins"))
	}
	for _, admin := range admins {
		markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
			{Text: lblRemove, Unique: "remove_admin", Data: strconv.FormatInt(admin.ID, 10)},
		})
		if err := h.Outbox.SendMD(c, adminDetail(h.tr(c, "admin_detail"), admin), markup); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAdmin demotes the administrator named in the callback payload.
func (h *Handlers) RemoveAdmin(c tele.Context) error {
	if !h.isSuperuser(c) {
		return nil
	}
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return h.Outbox.SendText(c, h.tr(c, "admin_not_found"))
	}

	user, err := h.Users.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if user == nil || !user.Admin {
		return h.Outbox.SendText(c, h.tr(c, "admin_not_found"))
	}
	if _, err := h.Users.SetAdmin(h.ctx(c), id, false); err != nil {
		return err
	}
	_ = c.Edit(&tele.ReplyMarkup{})
	return h.Outbox.SendText(c, fmt.Sprintf(h.tr(c, "admin_removed"), user.FirstName))
}

// StartAddAdmin enters the single-step promote form.
func (h *Handlers) StartAddAdmin(c tele.Context) error {
	if !h.isSuperuser(c) {
		return nil
	}
	if _, err := h.Sessions.Enter(sessionKey(c), AdminAddForm, AdminAddForm.First()); err != nil {
		return err
	}
	return h.Outbox.SendText(c, h.tr(c, "enter_admin_id"), &tele.SendOptions{
		ReplyMarkup: keyboard.RemoveKeyboard(),
	})
}

// registerAdminRules wires the promote form into the rules table.
func (h *Handlers) registerAdminRules() {
	h.Rules.On(AdminAddForm.State("id"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		id, err := strconv.ParseInt(c.Text(), 10, 64)
		if err != nil {
			return &state.ValidationError{Message: h.tr(c, "invalid_user_id")}
		}

		user, err := h.Users.Get(h.ctx(c), id)
		if err != nil {
			return err
		}
		if user == nil {
			h.Sessions.Finish(sess.Key)
			return h.Outbox.SendText(c, h.tr(c, "user_not_registered"), &tele.SendOptions{
				ReplyMarkup: h.administratorsKeyboard(),
			})
		}
		if user.Admin {
			h.Sessions.Finish(sess.Key)
			return h.Outbox.SendText(c, fmt.Sprintf(h.tr(c, "admin_exists"), user.FirstName), &tele.SendOptions{
				ReplyMarkup: h.administratorsKeyboard(),
			})
		}

		promoted, err := h.Users.SetAdmin(h.ctx(c), id, true)
		if err != nil {
			return err
		}
		h.Sessions.Finish(sess.Key)

		detail := adminDetail(h.tr(c, "admin_detail"), promoted)
		return h.Outbox.SendMD(c, fmt.Sprintf(h.tr(c, "new_admin"), detail), h.administratorsKeyboard())
	})
}
