package handlers

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/render"
	"github.com/backostech/postcardbot/core/storage"
)

// UserStats sends the registration chart with the total user count.
func (h *Handlers) UserStats(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}

	total, err := h.Users.Count(h.ctx(c))
	if err != nil {
		return err
	}
	users, err := h.Users.All(h.ctx(c))
	if err != nil {
		return err
	}

	stamps := make([]time.Time, 0, len(users))
	for _, u := range users {
		stamps = append(stamps, u.Created)
	}
	caption := fmt.Sprintf(h.tr(c, "total_users"), total)

	png, err := render.UsersByDay(render.BucketByDay(stamps))
	if err != nil {
		// Too few points for a chart; the count still goes out.
		return h.Outbox.SendText(c, caption)
	}
	photo := photoFromBytes(png)
	photo.Caption = fmt.Sprintf("%s\n%s", h.tr(c, "users_by_date"), caption)
	return h.Outbox.SendPhoto(c, photo)
}

// PostCardStats sends postcard and category counters.
func (h *Handlers) PostCardStats(c tele.Context) error {
	if !h.isAdmin(c) {
		return nil
	}

	total, err := h.PostCards.Count(h.ctx(c), nil)
	if err != nil {
		return err
	}
	active, err := h.PostCards.Count(h.ctx(c), storage.Doc{"is_active": true})
	if err != nil {
		return err
	}
	categories, err := h.Categories.Count(h.ctx(c))
	if err != nil {
		return err
	}

	return h.Outbox.SendText(c, fmt.Sprintf(h.tr(c, "postcard_stats"), total, active, categories))
}

// AdminStats lists the administrators for superusers.
func (h *Handlers) AdminStats(c tele.Context) error {
	if !h.isSuperuser(c) {
		return nil
	}

	admins, err := h.Users.Admins(h.ctx(c))
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return h.Outbox.SendText(c, h.tr(c, "no_admins"))
	}
	for _, admin := range admins {
		if err := h.Outbox.SendMD(c, adminDetail(h.tr(c, "admin_detail"), admin)); err != nil {
			return err
		}
	}
	return nil
}
