package state

import (
	"log/slog"
	"sync"

	"github.com/backostech/postcardbot/core/logger"
)

// Manager owns all live sessions, keyed by (user, chat). Sessions are
// created lazily on Enter and removed by Finish or Cancel; there is no
// expiry. All methods are safe for concurrent use, but event handlers for
// one session must still be serialized by the caller.
type Manager struct {
	mu       sync.RWMutex
	sessions map[Key]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[Key]*Session)}
}

// Peek returns the live session for key without creating one.
func (m *Manager) Peek(key Key) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[key]
	return sess, ok
}

// InProgress reports whether key has a live session.
func (m *Manager) InProgress(key Key) bool {
	_, ok := m.Peek(key)
	return ok
}

// Enter starts a conversation at st, which must be declared in group.
// Any previous session for key is discarded along with its scratch.
func (m *Manager) Enter(key Key, group Group, st State) (*Session, error) {
	if !group.Contains(st) {
		return nil, &InvalidStateError{Group: group.Name(), State: st}
	}
	sess := &Session{Key: key, Group: group, Current: st, Scratch: newScratch()}

	m.mu.Lock()
	m.sessions[key] = sess
	m.mu.Unlock()

	logger.Debug(logger.Background(), "tg", "fsm.enter",
		slog.Int64("user_id", key.UserID),
		slog.Int64("chat_id", key.ChatID),
		slog.String("group", group.Name()),
		slog.String("state", string(st)),
	)
	return sess, nil
}

// Advance moves the session to the next declared state. At the terminal
// state it returns a TerminalStateError and leaves the session untouched.
func (m *Manager) Advance(key Key) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[key]
	if !ok {
		return "", ErrNoSession
	}
	next, err := sess.Group.Next(sess.Current)
	if err != nil {
		return "", err
	}
	sess.Current = next

	logger.Debug(logger.Background(), "tg", "fsm.advance",
		slog.Int64("user_id", key.UserID),
		slog.Int64("chat_id", key.ChatID),
		slog.String("group", sess.Group.Name()),
		slog.String("state", string(next)),
	)
	return next, nil
}

// Finish completes the conversation, dropping state and scratch. Finishing
// an absent session is a no-op.
func (m *Manager) Finish(key Key) {
	m.drop(key, "fsm.finish")
}

// Cancel aborts the conversation. Identical effect to Finish, logged
// separately so aborted flows are distinguishable from completed ones.
func (m *Manager) Cancel(key Key) {
	m.drop(key, "fsm.cancel")
}

func (m *Manager) drop(key Key, event string) {
	m.mu.Lock()
	sess, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	logger.Debug(logger.Background(), "tg", event,
		slog.Int64("user_id", key.UserID),
		slog.Int64("chat_id", key.ChatID),
		slog.String("group", sess.Group.Name()),
		slog.String("state", string(sess.Current)),
	)
}
