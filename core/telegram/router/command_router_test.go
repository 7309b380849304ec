package router

import (
	"testing"

	tele "gopkg.in/telebot.v4"

	tg "github.com/backostech/postcardbot/core/telegram"
	"github.com/backostech/postcardbot/core/telegram/commands"
)

type fakeConv struct {
	active     bool
	dispatched int
}

func (f *fakeConv) Active(tele.Context) bool { return f.active }
func (f *fakeConv) Dispatch(tele.Context) error {
	f.dispatched++
	return nil
}

type cmdContext struct {
	tele.Context
	text  string
	store map[string]any
}

func newCmdContext(text string) *cmdContext {
	return &cmdContext{text: text, store: map[string]any{}}
}

func (f *cmdContext) Text() string             { return f.text }
func (f *cmdContext) Message() *tele.Message   { return &tele.Message{Text: f.text} }
func (f *cmdContext) Callback() *tele.Callback { return nil }
func (f *cmdContext) Sender() *tele.User       { return &tele.User{ID: 7} }
func (f *cmdContext) Chat() *tele.Chat         { return &tele.Chat{ID: 7} }
func (f *cmdContext) Update() tele.Update      { return tele.Update{} }
func (f *cmdContext) Get(key string) any       { return f.store[key] }
func (f *cmdContext) Set(key string, v any)    { f.store[key] = v }

func findRoute(t *testing.T, routes []tg.Route, endpoint string) tele.HandlerFunc {
	t.Helper()
	for _, r := range routes {
		if r.Endpoint == endpoint {
			return r.Handler
		}
	}
	t.Fatalf("no route bound to %s", endpoint)
	return nil
}

func TestCommandsYieldToActiveConversation(t *testing.T) {
	reg := tg.NewRegistry()
	fired := 0
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { fired++; return nil },
		Description: "Start the bot",
	})

	conv := &fakeConv{active: true}
	start := findRoute(t, CommandRoutes(conv, reg, CommandRouteOptions{}), "/start")

	if err := start(newCmdContext("/start")); err != nil {
		t.Fatal(err)
	}
	if fired != 0 {
		t.Fatalf("stateless handler ran while a session was active")
	}
	if conv.dispatched != 1 {
		t.Fatalf("command should go to the conversation, dispatched=%d", conv.dispatched)
	}

	conv.active = false
	if err := start(newCmdContext("/start")); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("stateless handler should run without a session, fired=%d", fired)
	}
	if conv.dispatched != 1 {
		t.Fatalf("conversation must not see commands without a session, dispatched=%d", conv.dispatched)
	}
}

func TestCommandRoutesWithoutConversations(t *testing.T) {
	reg := tg.NewRegistry()
	fired := 0
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { fired++; return nil },
		Description: "Start the bot",
	})

	start := findRoute(t, CommandRoutes(nil, reg, CommandRouteOptions{}), "/start")
	if err := start(newCmdContext("/start")); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("handler should run directly with no conversation layer, fired=%d", fired)
	}
}
