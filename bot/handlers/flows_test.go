package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/backostech/postcardbot/bot/models"
	"github.com/backostech/postcardbot/core/storage"
	"github.com/backostech/postcardbot/core/telegram/state"
)

type fakeContext struct {
	tele.Context
	message  *tele.Message
	callback *tele.Callback
	sender   *tele.User
	chat     *tele.Chat
	store    map[string]any
	sent     []string
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: 7, FirstName: "Abel"},
		chat:   &tele.Chat{ID: 7},
		store:  map[string]any{},
	}
}

func (f *fakeContext) Message() *tele.Message   { return f.message }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }
func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Chat() *tele.Chat         { return f.chat }
func (f *fakeContext) Update() tele.Update      { return tele.Update{} }

func (f *fakeContext) Text() string {
	if f.message == nil {
		return ""
	}
	return f.message.Text
}

func (f *fakeContext) Get(key string) any        { return f.store[key] }
func (f *fakeContext) Set(key string, value any) { f.store[key] = value }

func (f *fakeContext) Send(what any, _ ...any) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	return nil
}

func (f *fakeContext) Notify(_ tele.ChatAction) error { return nil }

func (f *fakeContext) asText(text string) *fakeContext {
	f.message = &tele.Message{Text: text}
	f.callback = nil
	delete(f.store, "logger_ctx")
	return f
}

func (f *fakeContext) asPhoto(fileID string) *fakeContext {
	f.message = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: fileID}}}
	f.callback = nil
	delete(f.store, "logger_ctx")
	return f
}

func (f *fakeContext) asCallback(unique, payload string) *fakeContext {
	f.message = &tele.Message{}
	f.callback = &tele.Callback{Unique: unique, Data: "\f" + unique + "|" + payload}
	delete(f.store, "logger_ctx")
	return f
}

func (f *fakeContext) actAsAdmin() *fakeContext {
	f.store["actor"] = &models.User{ID: f.sender.ID, FirstName: f.sender.FirstName, Admin: true}
	return f
}

func (f *fakeContext) sentContains(t *testing.T, substr string) {
	t.Helper()
	for _, msg := range f.sent {
		if strings.Contains(msg, substr) {
			return
		}
	}
	t.Fatalf("no sent message contains %q, sent: %v", substr, f.sent)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestHandlers(t *testing.T) (*Handlers, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	h := New(Deps{
		Users:      models.NewUsers(store),
		Categories: models.NewCategories(store),
		PostCards:  models.NewPostCards(store),
		Sessions:   state.NewManager(),
		Fetch: func(_ tele.Context, _ string) ([]byte, error) {
			return testPNG(t), nil
		},
	})
	h.RegisterRules()
	return h, store
}

func dispatch(t *testing.T, h *Handlers, c tele.Context) {
	t.Helper()
	if !h.Active(c) {
		t.Fatalf("expected an active conversation")
	}
	if err := h.Dispatch(c); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
}

func TestAddCategoryFlow(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext().actAsAdmin()

	if err := h.StartAddCategory(c); err != nil {
		t.Fatal(err)
	}
	c.sentContains(t, "Enter category name")

	dispatch(t, h, c.asText("Birthday"))
	c.sentContains(t, "Enter category description")

	dispatch(t, h, c.asText("Cards for birthdays"))
	c.sentContains(t, "Category added")

	if h.Active(c) {
		t.Fatalf("session should be finished")
	}

	cats, err := h.Categories.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 1 || cats[0].Name != "Birthday" || !cats[0].Active {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}

func TestCancelMidFlowKeepsNothing(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext().actAsAdmin()

	if err := h.StartAddCategory(c); err != nil {
		t.Fatal(err)
	}
	dispatch(t, h, c.asText("Birthday"))
	dispatch(t, h, c.asText("/cancel"))
	c.sentContains(t, "Operation cancelled")

	if h.Active(c) {
		t.Fatalf("session should be gone after cancel")
	}
	count, err := h.Categories.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("cancel must not persist anything, got %d categories", count)
	}
}

func TestEditCategorySkipKeepsValues(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext().actAsAdmin()

	cat, err := h.Categories.Create(context.Background(), "Holiday", "Seasonal cards")
	if err != nil {
		t.Fatal(err)
	}

	if err := h.EditCategory(c.asCallback("edit_category", cat.ID)); err != nil {
		t.Fatal(err)
	}
	dispatch(t, h, c.asText("/skip"))
	dispatch(t, h, c.asText("New Year greetings"))
	c.sentContains(t, "Category edited")

	got, err := h.Categories.Get(context.Background(), cat.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Holiday" || got.Description != "New Year greetings" {
		t.Fatalf("unexpected category after edit: %+v", got)
	}
}

func TestAddPostCardFlow(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext().actAsAdmin()

	cat, err := h.Categories.Create(context.Background(), "Holiday", "Seasonal cards")
	if err != nil {
		t.Fatal(err)
	}

	if err := h.StartAddPostCard(c.asCallback("add_postcard", cat.ID)); err != nil {
		t.Fatal(err)
	}
	dispatch(t, h, c.asText("Snowman"))
	dispatch(t, h, c.asText("A friendly snowman"))

	// Text where a photo is expected re-prompts and keeps the state.
	dispatch(t, h, c.asText("not a photo"))
	c.sentContains(t, "Please send a photo")
	if !h.Active(c) {
		t.Fatalf("validation failure must keep the session alive")
	}
}

func TestSendPostCardFlow(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext()

	cat, err := h.Categories.Create(context.Background(), "Holiday", "Seasonal cards")
	if err != nil {
		t.Fatal(err)
	}
	card, err := h.PostCards.Create(context.Background(), cat.ID, "Snowman", "A friendly snowman", "img-1", "thumb-1")
	if err != nil {
		t.Fatal(err)
	}

	if err := h.PickPostCard(c.asCallback("send_postcard", card.ID)); err != nil {
		t.Fatal(err)
	}
	c.sentContains(t, "Enter sender name")

	dispatch(t, h, c.asText("/skip"))
	c.sentContains(t, "Enter receiver name")

	dispatch(t, h, c.asText("Marta"))
	c.sentContains(t, "Postcard from Abel to Marta")

	dispatch(t, h, c.asCallback("send_confirm", ""))
	c.sentContains(t, "Your postcard is ready")
	if h.Active(c) {
		t.Fatalf("session should be finished after confirm")
	}
}

func TestSendPostCardReject(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext()

	cat, err := h.Categories.Create(context.Background(), "Holiday", "Seasonal cards")
	if err != nil {
		t.Fatal(err)
	}
	card, err := h.PostCards.Create(context.Background(), cat.ID, "Snowman", "A friendly snowman", "img-1", "thumb-1")
	if err != nil {
		t.Fatal(err)
	}

	if err := h.PickPostCard(c.asCallback("send_postcard", card.ID)); err != nil {
		t.Fatal(err)
	}
	dispatch(t, h, c.asText("Abel"))
	dispatch(t, h, c.asText("Marta"))
	dispatch(t, h, c.asCallback("send_reject", ""))
	c.sentContains(t, "canceled")
	if h.Active(c) {
		t.Fatalf("session should be finished after reject")
	}
}

func TestAddAdminValidation(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext()
	c.store["actor"] = &models.User{ID: 7, FirstName: "Abel", Superuser: true}

	if err := h.StartAddAdmin(c); err != nil {
		t.Fatal(err)
	}

	dispatch(t, h, c.asText("not-a-number"))
	c.sentContains(t, "Invalid telegram user id")
	if !h.Active(c) {
		t.Fatalf("invalid id must keep the form alive")
	}

	dispatch(t, h, c.asText("12345"))
	c.sentContains(t, "not registered")
	if h.Active(c) {
		t.Fatalf("unregistered id finishes the form")
	}
}

func TestPromoteAdminFlow(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext()
	c.store["actor"] = &models.User{ID: 7, FirstName: "Abel", Superuser: true}

	if _, err := h.Users.Save(context.Background(), storage.Doc{
		"id":         int64(12345),
		"first_name": "Marta",
	}); err != nil {
		t.Fatal(err)
	}

	if err := h.StartAddAdmin(c); err != nil {
		t.Fatal(err)
	}
	dispatch(t, h, c.asText("12345"))
	c.sentContains(t, "NEW ADMIN")

	promoted, err := h.Users.Get(context.Background(), 12345)
	if err != nil {
		t.Fatal(err)
	}
	if promoted == nil || !promoted.Admin {
		t.Fatalf("user should be admin after the flow: %+v", promoted)
	}
}

func TestNonAdminCannotStartAdminFlows(t *testing.T) {
	h, _ := newTestHandlers(t)
	c := newFakeContext()

	if err := h.StartAddCategory(c); err != nil {
		t.Fatal(err)
	}
	if h.Active(c) {
		t.Fatalf("non-admin must not enter the add form")
	}
	if len(c.sent) != 0 {
		t.Fatalf("non-admin gets no reply, got %v", c.sent)
	}
}
