package state

import (
	"fmt"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	message  *tele.Message
	callback *tele.Callback
	sent     []string
}

func textEvent(text string) *fakeContext {
	return &fakeContext{message: &tele.Message{Text: text}}
}

func photoEvent() *fakeContext {
	return &fakeContext{message: &tele.Message{Photo: &tele.Photo{}}}
}

func callbackEvent(unique string) *fakeContext {
	return &fakeContext{
		message:  &tele.Message{},
		callback: &tele.Callback{Unique: unique},
	}
}

func (f *fakeContext) Message() *tele.Message   { return f.message }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }

func (f *fakeContext) Text() string {
	if f.message == nil {
		return ""
	}
	return f.message.Text
}

func (f *fakeContext) Send(what any, _ ...any) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}

func TestDispatchRoutesToCurrentStateOnly(t *testing.T) {
	m := NewManager()
	g := NewGroup("category_add", "name", "description")
	key := Key{UserID: 1, ChatID: 1}
	sess, _ := m.Enter(key, g, g.First())

	var hit State
	rules := NewRules(m, nil)
	rules.On(g.State("name"), MatchText, func(c tele.Context, s *Session) error {
		hit = g.State("name")
		return nil
	})
	rules.On(g.State("description"), MatchText, func(c tele.Context, s *Session) error {
		hit = g.State("description")
		return nil
	})

	if err := rules.Dispatch(textEvent("Birthday"), sess); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if hit != g.State("name") {
		t.Fatalf("hit = %q", hit)
	}

	if _, err := m.Advance(key); err != nil {
		t.Fatal(err)
	}
	if err := rules.Dispatch(textEvent("Cake day"), sess); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if hit != g.State("description") {
		t.Fatalf("hit = %q", hit)
	}
}

func TestDispatchCancelBeatsStepHandlers(t *testing.T) {
	m := NewManager()
	g := NewGroup("send_postcard", "from", "to", "confirm")
	key := Key{UserID: 2, ChatID: 2}

	cancelled := false
	rules := NewRules(m, func(c tele.Context, s *Session) error {
		cancelled = true
		m.Cancel(s.Key)
		return c.Send("cancelled")
	})
	stepRan := false
	for _, st := range g.States() {
		rules.On(st, MatchText, func(c tele.Context, s *Session) error {
			stepRan = true
			return nil
		})
	}

	// /cancel must short-circuit in every state of the group.
	for _, st := range g.States() {
		sess, err := m.Enter(key, g, st)
		if err != nil {
			t.Fatalf("enter %q: %v", st, err)
		}
		cancelled = false
		if err := rules.Dispatch(textEvent("/cancel"), sess); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
		if !cancelled || stepRan {
			t.Fatalf("state %q: cancelled=%v stepRan=%v", st, cancelled, stepRan)
		}
		if m.InProgress(key) {
			t.Fatalf("state %q: session survived cancel", st)
		}
	}
}

func TestDispatchValidationErrorRepromptsSameState(t *testing.T) {
	m := NewManager()
	g := NewGroup("admin_add", "id")
	key := Key{UserID: 3, ChatID: 3}
	sess, _ := m.Enter(key, g, g.First())

	rules := NewRules(m, nil)
	rules.On(g.State("id"), MatchText, func(c tele.Context, s *Session) error {
		return &ValidationError{Message: "send a numeric id"}
	})

	evt := textEvent("not a number")
	if err := rules.Dispatch(evt, sess); err != nil {
		t.Fatalf("validation must not escape dispatch: %v", err)
	}
	if len(evt.sent) != 1 || evt.sent[0] != "send a numeric id" {
		t.Fatalf("sent = %v", evt.sent)
	}
	if sess.Current != g.State("id") || !m.InProgress(key) {
		t.Fatal("validation must keep the session in place")
	}
}

func TestDispatchDropsUnmatchedEvents(t *testing.T) {
	m := NewManager()
	g := NewGroup("postcard_add", "name", "description", "image")
	key := Key{UserID: 4, ChatID: 4}
	sess, _ := m.Enter(key, g, g.State("image"))

	rules := NewRules(m, nil)
	ran := false
	rules.On(g.State("image"), MatchPhoto, func(c tele.Context, s *Session) error {
		ran = true
		return nil
	})

	// Text arriving where a photo is expected is dropped, not dispatched.
	if err := rules.Dispatch(textEvent("hello"), sess); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if ran {
		t.Fatal("text must not reach the photo handler")
	}
	if sess.Current != g.State("image") {
		t.Fatalf("state moved to %q", sess.Current)
	}

	if err := rules.Dispatch(photoEvent(), sess); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !ran {
		t.Fatal("photo handler not reached")
	}
}

func TestDispatchCallbackMatching(t *testing.T) {
	m := NewManager()
	g := NewGroup("send_postcard", "from", "to", "confirm")
	key := Key{UserID: 5, ChatID: 5}
	sess, _ := m.Enter(key, g, g.State("confirm"))

	var pressed string
	rules := NewRules(m, nil)
	rules.On(g.State("confirm"), MatchCallback("send_confirm"), func(c tele.Context, s *Session) error {
		pressed = "confirm"
		m.Finish(s.Key)
		return nil
	})
	rules.On(g.State("confirm"), MatchCallback("send_reject"), func(c tele.Context, s *Session) error {
		pressed = "reject"
		m.Cancel(s.Key)
		return nil
	})

	if err := rules.Dispatch(callbackEvent("send_reject"), sess); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if pressed != "reject" {
		t.Fatalf("pressed = %q", pressed)
	}
	if m.InProgress(key) {
		t.Fatal("reject must drop the session")
	}
}
