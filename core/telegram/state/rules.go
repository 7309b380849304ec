package state

import (
	"errors"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/core/logger"
)

// Handler processes one event for a live session.
type Handler func(c tele.Context, sess *Session) error

// Predicate decides whether a step handler accepts the incoming event.
type Predicate func(c tele.Context) bool

// Step binds a handler to one state of one group. Only steps whose State
// equals the session's current state are considered, so a step never sees
// events meant for another part of the form.
type Step struct {
	State  State
	Match  Predicate
	Handle Handler
}

// Rules is the dispatch table for all conversation groups, built once at
// startup.
type Rules struct {
	manager *Manager
	cancel  Handler
	steps   map[State][]Step
}

// NewRules creates an empty dispatch table. The cancel handler runs for
// /cancel in any state of any group; it must drop the session via the
// manager. A nil cancel handler falls back to a silent Manager.Cancel.
func NewRules(manager *Manager, cancel Handler) *Rules {
	return &Rules{
		manager: manager,
		cancel:  cancel,
		steps:   make(map[State][]Step),
	}
}

// On registers a step handler.
func (r *Rules) On(st State, match Predicate, handle Handler) {
	r.steps[st] = append(r.steps[st], Step{State: st, Match: match, Handle: handle})
}

// Dispatch routes one event to the session's current state.
//
// /cancel takes priority over every step handler. A handler returning
// ValidationError keeps the state and re-prompts with its message. Events
// no registered step accepts are logged and dropped, so stray input cannot
// advance or corrupt a form.
func (r *Rules) Dispatch(c tele.Context, sess *Session) error {
	if sess == nil {
		return ErrNoSession
	}

	if IsCancelCommand(c) {
		if r.cancel != nil {
			return r.cancel(c, sess)
		}
		r.manager.Cancel(sess.Key)
		return nil
	}

	for _, step := range r.steps[sess.Current] {
		if step.Match != nil && !step.Match(c) {
			continue
		}
		err := step.Handle(c, sess)
		var invalid *ValidationError
		if errors.As(err, &invalid) {
			logger.Debug(logger.Background(), "tg", "fsm.reject",
				slog.Int64("user_id", sess.Key.UserID),
				slog.String("state", string(sess.Current)),
				slog.String("cause", invalid.Message),
			)
			return c.Send(invalid.Message)
		}
		return err
	}

	logger.Warn(logger.Background(), "tg", "fsm.unhandled",
		slog.Int64("user_id", sess.Key.UserID),
		slog.Int64("chat_id", sess.Key.ChatID),
		slog.String("group", sess.Group.Name()),
		slog.String("state", string(sess.Current)),
	)
	return nil
}

// IsCancelCommand reports whether the event is the universal /cancel.
func IsCancelCommand(c tele.Context) bool {
	if c.Callback() != nil {
		return false
	}
	text := strings.TrimSpace(c.Text())
	return text == "/cancel" || strings.HasPrefix(text, "/cancel@")
}

// MatchText accepts plain text messages.
func MatchText(c tele.Context) bool {
	if c.Callback() != nil {
		return false
	}
	msg := c.Message()
	if msg == nil || msg.Photo != nil {
		return false
	}
	return strings.TrimSpace(c.Text()) != ""
}

// MatchPhoto accepts photo messages.
func MatchPhoto(c tele.Context) bool {
	msg := c.Message()
	return msg != nil && msg.Photo != nil
}

// MatchCallback accepts callback presses with one of the given unique keys.
func MatchCallback(uniques ...string) Predicate {
	return func(c tele.Context) bool {
		cb := c.Callback()
		if cb == nil {
			return false
		}
		for _, u := range uniques {
			if cb.Unique == u {
				return true
			}
		}
		return false
	}
}

// MatchAny accepts every event. Useful as a trailing catch-all step that
// re-prompts on malformed input.
func MatchAny(tele.Context) bool { return true }
