package state

import (
	"errors"
	"testing"
)

func TestGroupQualifiesStates(t *testing.T) {
	g := NewGroup("category_add", "name", "description")
	if g.First() != State("category_add/name") {
		t.Fatalf("first = %q", g.First())
	}
	if !g.Contains(g.State("description")) {
		t.Fatal("declared state missing")
	}
	if g.Contains(State("category_edit/name")) {
		t.Fatal("foreign state must not match")
	}
}

func TestEnterRejectsUndeclaredState(t *testing.T) {
	m := NewManager()
	g := NewGroup("category_add", "name", "description")

	_, err := m.Enter(Key{UserID: 1, ChatID: 1}, g, State("category_add/bogus"))
	var invalid *InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidStateError", err)
	}
	if m.InProgress(Key{UserID: 1, ChatID: 1}) {
		t.Fatal("failed enter must not create a session")
	}
}

func TestAdvanceWalksLinearlyAndStopsAtTerminal(t *testing.T) {
	m := NewManager()
	g := NewGroup("postcard_add", "name", "description", "image")
	key := Key{UserID: 7, ChatID: 7}

	sess, err := m.Enter(key, g, g.First())
	if err != nil {
		t.Fatalf("enter: %v", err)
	}

	next, err := m.Advance(key)
	if err != nil || next != g.State("description") {
		t.Fatalf("advance = %q, %v", next, err)
	}
	if sess.Current != g.State("description") {
		t.Fatalf("session not updated: %q", sess.Current)
	}

	if _, err := m.Advance(key); err != nil {
		t.Fatalf("advance to terminal: %v", err)
	}

	_, err = m.Advance(key)
	var terminal *TerminalStateError
	if !errors.As(err, &terminal) {
		t.Fatalf("err = %v, want TerminalStateError", err)
	}
	// Failed advance leaves the session at the terminal state, still live.
	if sess.Current != g.State("image") || !m.InProgress(key) {
		t.Fatalf("session disturbed: %q in_progress=%v", sess.Current, m.InProgress(key))
	}
}

func TestAdvanceWithoutSession(t *testing.T) {
	m := NewManager()
	if _, err := m.Advance(Key{UserID: 9, ChatID: 9}); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestFinishAndCancelDropStateAndScratch(t *testing.T) {
	m := NewManager()
	g := NewGroup("send_postcard", "from", "to", "confirm")
	key := Key{UserID: 3, ChatID: 3}

	sess, _ := m.Enter(key, g, g.First())
	sess.Scratch.Set("from", "Alice")
	m.Finish(key)
	if m.InProgress(key) {
		t.Fatal("finish must drop the session")
	}
	// Finishing again is a no-op.
	m.Finish(key)

	sess, _ = m.Enter(key, g, g.First())
	if sess.Scratch.Len() != 0 {
		t.Fatal("re-entered session must start with fresh scratch")
	}
	m.Cancel(key)
	if m.InProgress(key) {
		t.Fatal("cancel must drop the session")
	}
	m.Cancel(key)
}

func TestSessionsAreIsolatedByKey(t *testing.T) {
	m := NewManager()
	g := NewGroup("category_add", "name", "description")

	a := Key{UserID: 1, ChatID: 10}
	b := Key{UserID: 1, ChatID: 20}

	sa, _ := m.Enter(a, g, g.First())
	sb, _ := m.Enter(b, g, g.First())
	sa.Scratch.Set("name", "from a")
	sb.Scratch.Set("name", "from b")

	if _, err := m.Advance(a); err != nil {
		t.Fatalf("advance a: %v", err)
	}
	if sb.Current != g.First() {
		t.Fatalf("advancing a moved b to %q", sb.Current)
	}

	m.Cancel(a)
	if !m.InProgress(b) {
		t.Fatal("cancelling a dropped b")
	}
	if sb.Scratch.String("name") != "from b" {
		t.Fatalf("b scratch = %q", sb.Scratch.String("name"))
	}
}

func TestEnterReplacesExistingSession(t *testing.T) {
	m := NewManager()
	add := NewGroup("category_add", "name", "description")
	edit := NewGroup("category_edit", "name", "description")
	key := Key{UserID: 5, ChatID: 5}

	old, _ := m.Enter(key, add, add.First())
	old.Scratch.Set("name", "halfway")

	fresh, err := m.Enter(key, edit, edit.First())
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if fresh.Group.Name() != "category_edit" || fresh.Scratch.Len() != 0 {
		t.Fatalf("stale session survived: %+v", fresh)
	}
}

func TestScratchKeepsInsertionOrder(t *testing.T) {
	s := newScratch()
	s.Set("b", 1)
	s.Set("a", 2)
	s.Set("c", 3)
	s.Set("a", 4) // overwrite keeps position

	keys := s.Keys()
	want := []string{"b", "a", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}

	s.Delete("a")
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
	if v, ok := s.Get("b"); !ok || v != 1 {
		t.Fatalf("b = %v %v", v, ok)
	}
}
