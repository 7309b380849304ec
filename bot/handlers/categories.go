package handlers

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/models"
	"github.com/backostech/postcardbot/core/storage"
	"github.com/backostech/postcardbot/core/telegram/callbacks"
	"github.com/backostech/postcardbot/core/telegram/keyboard"
	"github.com/backostech/postcardbot/core/telegram/state"
)

func categoryOptions(cat *models.Category) *tele.ReplyMarkup {
	statusLabel := lblDeactivate
	if !cat.Active {
		statusLabel = lblActivate
	}
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: BtnPostcards, Unique: "categorical_postcards", Data: cat.ID},
		},
		[]keyboard.InlineBtn{
			{Text: lblEdit, Unique: "edit_category", Data: cat.ID},
			{Text: lblDelete, Unique: "delete_category", Data: cat.ID},
			{Text: statusLabel, Unique: "change_category_status", Data: cat.ID},
		},
	)
}

func categoryCard(cat *models.Category) string {
	return fmt.Sprintf("*%s*\n\n_%s_", md(cat.Name), md(cat.Description))
}

// CategoriesMenu lists all categories with their management options.
func (h *Handlers) CategoriesMenu(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	if err := h.Outbox.SendText(c, h.tr(c, "categories_title"), &tele.SendOptions{
		ReplyMarkup: h.categoriesKeyboard(),
	}); err != nil {
		return err
	}

	cats, err := h.Categories.All(h.ctx(c))
	if err != nil {
		return err
	}
	for _, cat := range cats {
		if err := h.Outbox.SendMD(c, categoryCard(cat), categoryOptions(cat)); err != nil {
			return err
		}
	}
	return nil
}

// StartAddCategory enters the two-step add form.
func (h *Handlers) StartAddCategory(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	if _, err := h.Sessions.Enter(sessionKey(c), CategoryAddForm, CategoryAddForm.First()); err != nil {
		return err
	}
	return h.Outbox.SendText(c, h.tr(c, "enter_category_name"), &tele.SendOptions{
		ReplyMarkup: keyboard.RemoveKeyboard(),
	})
}

// EditCategory enters the edit form for an existing category. The loaded
// id travels in the scratch; skip keeps the stored value of a step.
func (h *Handlers) EditCategory(c tele.Context) error {
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

	sess, err := h.Sessions.Enter(sessionKey(c), CategoryEditForm, CategoryEditForm.First())
	if err != nil {
		return err
	}
	sess.Scratch.Set("category_id", cat.ID)
	sess.Scratch.Set("old_name", cat.Name)
	sess.Scratch.Set("old_description", cat.Description)

	prompt := fmt.Sprintf(h.tr(c, "edit_category_name"), md(cat.Name))
	return h.Outbox.SendMD(c, prompt, keyboard.RemoveKeyboard())
}

// DeleteCategory asks for confirmation before removal.
func (h *Handlers) DeleteCategory(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: lblYes, Unique: "confirm_delete_category", Data: id},
		{Text: lblNo, Unique: "cancel_delete_category", Data: id},
	})
	return c.Edit(h.tr(c, "confirm_delete_category"), markup)
}

// ConfirmDeleteCategory removes the category.
func (h *Handlers) ConfirmDeleteCategory(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	existed, err := h.Categories.Delete(h.ctx(c), id)
	if err != nil {
		return err
	}
	if !existed {
		return c.Edit(h.tr(c, "category_not_found"))
	}
	return c.Edit(h.tr(c, "category_deleted"))
}

// CancelDeleteCategory restores the category card in place.
func (h *Handlers) CancelDeleteCategory(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	cat, err := h.Categories.Get(h.ctx(c), id)
	if err != nil {
		return err
	}
	if cat == nil {
		return c.Edit(h.tr(c, "category_not_found"))
	}
	return c.Edit(categoryCard(cat), categoryOptions(cat), tele.ModeMarkdown)
}

// ChangeCategoryStatus flips activation and refreshes the inline options.
func (h *Handlers) ChangeCategoryStatus(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}
	id := callbacks.CallbackPayload(c)
	cat, err := h.Categories.ToggleStatus(h.ctx(c), id)
	if err != nil {
		return err
	}
	if cat == nil {
		return h.Outbox.SendText(c, h.tr(c, "category_not_found"))
	}
	return c.Edit(categoryCard(cat), categoryOptions(cat), tele.ModeMarkdown)
}

// registerCategoryRules wires both category forms into the rules table.
func (h *Handlers) registerCategoryRules() {
	// Add flow: name then description, no skip.
	h.Rules.On(CategoryAddForm.State("name"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		sess.Scratch.Set("name", c.Text())
		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		return h.Outbox.SendText(c, h.tr(c, "enter_category_description"))
	})
	h.Rules.On(CategoryAddForm.State("description"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		cat, err := h.Categories.Create(h.ctx(c), sess.Scratch.String("name"), c.Text())
		if err != nil {
			return err
		}
		h.Sessions.Finish(sess.Key)

		if err := h.Outbox.SendText(c, h.tr(c, "category_added"), &tele.SendOptions{
			ReplyMarkup: h.categoriesKeyboard(),
		}); err != nil {
			return err
		}
		return h.Outbox.SendMD(c, categoryCard(cat), categoryOptions(cat))
	})

	// Edit flow: same steps, /skip keeps the stored value.
	h.Rules.On(CategoryEditForm.State("name"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		if !isSkip(c) {
			sess.Scratch.Set("name", c.Text())
		}
		if _, err := h.Sessions.Advance(sess.Key); err != nil {
			return err
		}
		prompt := fmt.Sprintf(h.tr(c, "edit_category_description"), md(sess.Scratch.String("old_description")))
		return h.Outbox.SendMD(c, prompt)
	})
	h.Rules.On(CategoryEditForm.State("description"), state.MatchText, func(c tele.Context, sess *state.Session) error {
		set := storage.Doc{}
		if name := sess.Scratch.String("name"); name != "" {
			set["name"] = name
		}
		if !isSkip(c) {
			set["description"] = c.Text()
		}

		cat, err := h.Categories.Update(h.ctx(c), sess.Scratch.String("category_id"), set)
		if err != nil {
			return err
		}
		h.Sessions.Finish(sess.Key)
		if cat == nil {
			return h.Outbox.SendText(c, h.tr(c, "category_not_found"))
		}

		if err := h.Outbox.SendText(c, h.tr(c, "category_edited"), &tele.SendOptions{
			ReplyMarkup: h.categoriesKeyboard(),
		}); err != nil {
			return err
		}
		return h.Outbox.SendMD(c, categoryCard(cat), categoryOptions(cat))
	})
}
