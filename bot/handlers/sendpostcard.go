package handlers

import (
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/render"
	"github.com/backostech/postcardbot/core/logger"
	"github.com/backostech/postcardbot/core/telegram/callbacks"
	"github.com/backostech/postcardbot/core/telegram/keyboard"
	"github.com/backostech/postcardbot/core/telegram/state"
)

// SendPostCardMenu offers the active categories as an inline picker.
func (h *Handlers) SendPostCardMenu(c tele.Context) error {
	cats, err := h.Categories.Active(h.ctx(c))
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return h.Outbox.SendText(c, h.tr(c, "no_category_selected"))
	}

	buttons := make([]keyboard.InlineBtn, 0, len(cats))
	for _, cat := range cats {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   cat.Name,
			Unique: "category",
			Data:   cat.ID,
		})
	}
	return h.Outbox.SendText(c, h.tr(c, "select_category"), &tele.SendOptions{
		ReplyMarkup: keyboard.InlineButtonsNPerRow(buttons, 2),
	})
}

// PickCategory lists the chosen category's active templates.
func (h *Handlers) PickCategory(c tele.Context) error {
	id := callbacks.CallbackPayload(c)
	cat, err := h.Categories.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if cat == nil || !cat.Active {
		return h.Outbox.SendText(c, h.tr(c, "category_not_found"))
	}

	cards, err := h.PostCards.ByCategory(h.ctx(c), cat.ID, true)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return h.Outbox.SendText(c, fmt.Sprintf(h.tr(c, "no_postcards"), cat.Name))
	}

	if err := h.Outbox.SendText(c, h.tr(c, "select_template")); err != nil {
		return err
	}
	for _, card := range cards {
		markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
			{Text: lblUseIt, Unique: "send_postcard", Data: card.ID},
		})
		photo := &tele.Photo{File: tele.File{FileID: card.Thumbnail}, Caption: postcardCaption(card)}
		if err := h.Outbox.SendPhoto(c, photo, markup); err != nil {
			return err
		}
	}
	return nil
}

// PickPostCard starts the personalization form for the chosen template.
func (h *Handlers) PickPostCard(c tele.Context) error {
	id := callbacks.CallbackPayload(c)
	card, err := h.PostCards.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if card == nil || !card.Active {
		return h.Outbox.SendText(c, h.tr(c, "postcard_not_found"))
	}

	sess, err := h.Sessions.Enter(sessionKey(c), SendPostCardForm, SendPostCardForm.First())
	if err != nil {
		return err
	}
	sess.Scratch.Set("postcard_id", card.ID)
	sess.Scratch.Set("image", card.Image)
	sess.Scratch.Set("name", card.Name)

	sender := ""
	if user := c.Sender(); user != nil {
		sender = user.FirstName
	}
	prompt := fmt.Sprintf(h.tr(c, "enter_sender_name"), md(sender))
	return h.Outbox.SendMD(c, prompt, keyboard.RemoveKeyboard())
}

// registerSendRules wires the personalization form into the rules table.
func (h *Handlers) registerSendRules() {
	h.Rules.On(SendPostCardForm.State("from"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		from := c.Text()
		if isSkip(c) {
			from = ""
			if user := c.Sender(); user != nil {
				from = user.FirstName
			}
		}
		sess.Scratch.Set("from", from)
		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		return h.Outbox.SendText(c, h.tr(c, "enter_receiver_name"))
	})

	h.Rules.On(SendPostCardForm.State("to"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		sess.Scratch.Set("to", c.Text())
		_ = c.Notify(tele.UploadingPhoto)

		data, err := h.fetch(c, sess.Scratch.String("image"))
		if err != nil {
			return err
		}
		composed, err := render.Compose(data, sess.Scratch.String("from"), sess.Scratch.String("to"))
		if err != nil {
			return err
		}

		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		photo := photoFromBytes(composed)
		caption := fmt.Sprintf(h.tr(c, "postcard_caption"), sess.Scratch.String("from"), c.Text())
		photo.Caption = caption + "\n\n" + h.tr(c, "confirm_send_postcard")
		markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
			{Text: lblConfirm, Unique: "send_confirm"},
			{Text: lblCancel, Unique: "send_reject"},
		})
		return h.Outbox.SendPhoto(c, photo, markup)
	})

	h.Rules.On(SendPostCardForm.State("confirm"), state.MatchCallback("send_confirm"), func(c tele.Context, sess *state.Session) error {
		logger.Info(h.ctx(c), "tg", "postcard.sent",
			slog.String("postcard_id", sess.Scratch.String("postcard_id")),
			slog.String("postcard", sess.Scratch.String("name")))
		h.Sessions.Finish(sess.Key)
		return h.Outbox.SendText(c, h.tr(c, "postcard_ready"), &tele.SendOptions{
			ReplyMarkup: h.mainMenuKeyboard(c),
		})
	})

	h.Rules.On(SendPostCardForm.State("confirm"), state.MatchCallback("send_reject"), func(c tele.Context, sess *state.Session) error {
		h.Sessions.Finish(sess.Key)
		return h.Outbox.SendText(c, h.tr(c, "postcard_send_cancelled"), &tele.SendOptions{
			ReplyMarkup: h.mainMenuKeyboard(c),
		})
	})
}
