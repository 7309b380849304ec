package helpers

import (
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/core/logger"
	"github.com/backostech/postcardbot/core/telegram/sender"
)

// Outbox sends messages through an explicit dispatcher. Handlers hold an
// Outbox instead of reaching for shared package state; a zero Outbox sends
// synchronously, which is what tests want.
type Outbox struct {
	Dispatcher *sender.Dispatcher
}

func (o Outbox) sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	if o.Dispatcher == nil {
		return run()
	}

	ctx := BuildContext(c)
	if err := o.Dispatcher.Enqueue(ctx, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("endpoint", endpoint),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends raw text (no parse mode) to the current recipient.
func (o Outbox) SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	return o.sendAsync(c, "send.text", "sendMessage", func() error {
		if sendOpts != nil {
			return c.Send(text, sendOpts)
		}
		return c.Send(text)
	})
}

// SendMD sends a message with Markdown parse mode and optional reply markup.
func (o Outbox) SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: firstMarkup(markup)}
	return o.SendText(c, text, opts)
}

// SendPhoto sends a photo with optional reply markup.
func (o Outbox) SendPhoto(c tele.Context, photo *tele.Photo, markup ...*tele.ReplyMarkup) error {
	rm := firstMarkup(markup)
	return o.sendAsync(c, "send.photo", "sendPhoto", func() error {
		if rm != nil {
			return c.Send(photo, rm)
		}
		return c.Send(photo)
	})
}

// EditMD edits a message with Markdown parse mode and optional reply markup.
func EditMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.Edit(text, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: firstMarkup(markup)})
}

// EditOrSendMD tries to edit the message (Markdown) or sends a new one if edit fails.
func EditOrSendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.EditOrSend(text, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: firstMarkup(markup)})
}

func firstMarkup(markup []*tele.ReplyMarkup) *tele.ReplyMarkup {
	if len(markup) > 0 {
		return markup[0]
	}
	return nil
}
