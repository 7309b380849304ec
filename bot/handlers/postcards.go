package handlers

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/models"
	"github.com/backostech/postcardbot/bot/render"
	"github.com/backostech/postcardbot/core/storage"
	"github.com/backostech/postcardbot/core/telegram/callbacks"
	"github.com/backostech/postcardbot/core/telegram/keyboard"
	"github.com/backostech/postcardbot/core/telegram/state"
)

func postcardOptions(card *models.PostCard) *tele.ReplyMarkup {
	statusLabel := lblDeactivate
	if !card.Active {
		statusLabel = lblActivate
	}
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: lblEdit, Unique: "edit_postcard", Data: card.ID},
			{Text: lblDelete, Unique: "delete_postcard", Data: card.ID},
			{Text: statusLabel, Unique: "change_postcard_status", Data: card.ID},
		},
	)
}

func postcardCaption(card *models.PostCard) string {
	return fmt.Sprintf("%s\n\n%s", card.Name, card.Description)
}

// CategoryPostCards lists a category's postcards for management. The
// header carries the inline add button so the new card lands in the
// right category.
func (h *Handlers) CategoryPostCards(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	cat, err := h.Categories.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if cat == nil {
		return h.Outbox.SendText(c, h.tr(c, "category_not_found"))
	}

	cards, err := h.PostCards.ByCategory(h.ctx(c), cat.ID, false)
	if err != nil {
		return err
	}

	header := fmt.Sprintf(h.tr(c, "all_postcards"), cat.Name)
	if len(cards) == 0 {
		header = fmt.Sprintf(h.tr(c, "no_postcards"), cat.Name)
	}
	addMarkup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: lblAddCard, Unique: "add_postcard", Data: cat.ID},
	})
	if err := h.Outbox.SendText(c, header, &tele.SendOptions{
		ReplyMarkup: h.postcardsKeyboard(),
	}); err != nil {
		return err
	}
	if err := h.Outbox.SendText(c, h.tr(c, "select_template"), &tele.SendOptions{
		ReplyMarkup: addMarkup,
	}); err != nil {
		return err
	}

	for _, card := range cards {
		photo := &tele.Photo{File: tele.File{FileID: card.Thumbnail}, Caption: postcardCaption(card)}
		if err := h.Outbox.SendPhoto(c, photo, postcardOptions(card)); err != nil {
			return err
		}
	}
	return nil
}

// StartAddPostCard enters the add form with the category pinned from the
// callback payload.
func (h *Handlers) StartAddPostCard(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	categoryID := callbacks.CallbackPayload(c)
	cat, err := h.Categories.Get(h.ctx(c), categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return h.Outbox.SendText(c, h.tr(c, "category_not_found"))
	}

	sess, err := h.Sessions.Enter(sessionKey(c), PostCardAddForm, PostCardAddForm.First())
	if err != nil {
		return err
	}
	sess.Scratch.Set("category_id", cat.ID)

	return h.Outbox.SendText(c, h.tr(c, "enter_postcard_name"), &tele.SendOptions{
		ReplyMarkup: keyboard.RemoveKeyboard(),
	})
}

// EditPostCard enters the edit form; every step accepts /skip.
func (h *Handlers) EditPostCard(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	card, err := h.PostCards.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if card == nil {
		return h.Outbox.SendText(c, h.tr(c, "postcard_not_found"))
	}

	sess, err := h.Sessions.Enter(sessionKey(c), PostCardEditForm, PostCardEditForm.First())
	if err != nil {
		return err
	}
	sess.Scratch.Set("postcard_id", card.ID)
	sess.Scratch.Set("old_description", card.Description)

	prompt := fmt.Sprintf(h.tr(c, "edit_postcard_name"), md(card.Name))
	return h.Outbox.SendMD(c, prompt, keyboard.RemoveKeyboard())
}

// DeletePostCard asks for confirmation before removal.
func (h *Handlers) DeletePostCard(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	card, err := h.PostCards.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if card == nil {
		return h.Outbox.SendText(c, h.tr(c, "postcard_not_found"))
	}
	markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: lblYes, Unique: "confirm_delete_postcard", Data: id},
		{Text: lblNo, Unique: "cancel_delete_postcard", Data: id},
	})
	// The card message is a photo, so the question goes into its caption.
	return c.EditCaption(fmt.Sprintf(h.tr(c, "confirm_delete_postcard"), card.Name), markup)
}

// ConfirmDeletePostCard removes the postcard and its message.
func (h *Handlers) ConfirmDeletePostCard(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	card, err := h.PostCards.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if card == nil {
		return h.Outbox.SendText(c, h.tr(c, "postcard_not_found"))
	}
	if _, err := h.PostCards.Delete(h.ctx(c), id); err != nil {
		return err
	}
	_ = c.Delete()
	return h.Outbox.SendText(c, fmt.Sprintf(h.tr(c, "postcard_deleted"), card.Name))
}

// CancelDeletePostCard restores the card's management options.
func (h *Handlers) CancelDeletePostCard(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	card, err := h.PostCards.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if card == nil {
		return h.Outbox.SendText(c, h.tr(c, "postcard_not_found"))
	}
	return c.EditCaption(postcardCaption(card), postcardOptions(card))
}

// ChangePostCardStatus flips activation and refreshes the options.
func (h *Handlers) ChangePostCardStatus(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	card, err := h.PostCards.ToggleStatus(h.ctx(c), id)
	if err != nil {
		return err
	}
	if card == nil {
		return h.Outbox.SendText(c, h.tr(c, "postcard_not_found"))
	}
	return c.Edit(postcardOptions(card))
}

// intakeImage downloads the uploaded photo, builds the thumbnail, and
// uploads it so a Telegram file id can be stored alongside the original.
// The throwaway thumbnail message is deleted right after.
func (h *Handlers) intakeImage(c tele.Context) (image, thumbnail string, err error) {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return "", "", &state.ValidationError{Message: h.tr(c, "expected_postcard_image")}
	}
	image = msg.Photo.FileID

	data, err := h.fetch(c, image)
	if err != nil {
		return "", "", err
	}
	small, err := render.Thumbnail(data, 300)
	if err != nil {
		return "", "", err
	}

	sent, err := c.Bot().Send(c.Recipient(), photoFromBytes(small))
	if err != nil {
		return "", "", err
	}
	if sent.Photo != nil {
		thumbnail = sent.Photo.FileID
	} else {
		thumbnail = image
	}
	_ = c.Bot().Delete(sent)
	return image, thumbnail, nil
}

// registerPostCardRules wires both postcard forms into the rules table.
func (h *Handlers) registerPostCardRules() {
	// Add flow: name, description, then a photo upload.
	h.Rules.On(PostCardAddForm.State("name"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		sess.Scratch.Set("name", c.Text())
		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		return h.Outbox.SendText(c, h.tr(c, "enter_postcard_description"))
	})
	h.Rules.On(PostCardAddForm.State("description"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		sess.Scratch.Set("description", c.Text())
		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		return h.Outbox.SendText(c, h.tr(c, "enter_postcard_image"))
	})
	h.Rules.On(PostCardAddForm.State("image"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		return &state.ValidationError{Message: h.tr(c, "expected_postcard_image")}
	})
	h.Rules.On(PostCardAddForm.State("image"), state.MatchPhoto, func(c tele.Context, sess *state.Session) error {
		image, thumbnail, err := h.intakeImage(c)
		if err != nil {
			return err
		}
		card, err := h.PostCards.Create(h.ctx(c),
			sess.Scratch.String("category_id"),
			sess.Scratch.String("name"),
			sess.Scratch.String("description"),
			image, thumbnail)
		if err != nil {
			return err
		}
		h.Sessions.Finish(sess.Key)

		if err := h.Outbox.SendText(c, h.tr(c, "postcard_added"), &tele.SendOptions{
			ReplyMarkup: h.postcardsKeyboard(),
		}); err != nil {
			return err
		}
		photo := &tele.Photo{File: tele.File{FileID: card.Thumbnail}, Caption: postcardCaption(card)}
		return h.Outbox.SendPhoto(c, photo, postcardOptions(card))
	})

	// Edit flow: /skip keeps the stored value at every step.
	h.Rules.On(PostCardEditForm.State("name"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		if !isSkip(c) {
			sess.Scratch.Set("name", c.Text())
		}
		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		prompt := fmt.Sprintf(h.tr(c, "edit_postcard_description"), md(sess.Scratch.String("old_description")))
		return h.Outbox.SendMD(c, prompt)
	})
	h.Rules.On(PostCardEditForm.State("description"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		if !isSkip(c) {
			sess.Scratch.Set("description", c.Text())
		}
		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		return h.Outbox.SendText(c, h.tr(c, "edit_postcard_image"))
	})
	finishEdit := func(c tele.Context, sess *state.Session, set storage.Doc) error {
		if name := sess.Scratch.String("name"); name != "" {
			set["name"] = name
		}
		if desc := sess.Scratch.String("description"); desc != "" {
			set["description"] = desc
		}

		card, err := h.PostCards.Update(h.ctx(c), sess.Scratch.String("postcard_id"), set)
		if err != nil {
			return err
		}
		h.Sessions.Finish(sess.Key)
		if card == nil {
			return h.Outbox.SendText(c, h.tr(c, "postcard_not_found"))
		}

		if err := h.Outbox.SendText(c, h.tr(c, "postcard_edited"), &tele.SendOptions{
			ReplyMarkup: h.postcardsKeyboard(),
		}); err != nil {
			return err
		}
		photo := &tele.Photo{File: tele.File{FileID: card.Thumbnail}, Caption: postcardCaption(card)}
		return h.Outbox.SendPhoto(c, photo, postcardOptions(card))
	}
	h.Rules.On(PostCardEditForm.State("image"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		if !isSkip(c) {
			return &state.ValidationError{Message: h.tr(c, "expected_postcard_image")}
		}
		return finishEdit(c, sess, storage.Doc{})
	})
	h.Rules.On(PostCardEditForm.State("image"), state.MatchPhoto, func(c tele.Context, sess *state.Session) error {
		image, thumbnail, err := h.intakeImage(c)
		if err != nil {
			return err
		}
		return finishEdit(c, sess, storage.Doc{"image": image, "thumbnail": thumbnail})
	})
}
