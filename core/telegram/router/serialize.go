package router

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

type sessionKey struct {
	userID int64
	chatID int64
}

// SerializeMiddleware serialises update handling per (user, chat) pair so
// that concurrent updates from the same dialog never interleave. Updates
// from different dialogs still run in parallel.
func SerializeMiddleware() tele.MiddlewareFunc {
	var (
		mu    sync.Mutex
		locks = make(map[sessionKey]*sync.Mutex)
	)
	lockFor := func(key sessionKey) *sync.Mutex {
		mu.Lock()
		defer mu.Unlock()
		l, ok := locks[key]
		if !ok {
			l = &sync.Mutex{}
			locks[key] = l
		}
		return l
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			key := sessionKey{}
			if user := c.Sender(); user != nil {
				key.userID = user.ID
			}
			if chat := c.Chat(); chat != nil {
				key.chatID = chat.ID
			}
			if key.userID == 0 && key.chatID == 0 {
				return next(c)
			}
			l := lockFor(key)
			l.Lock()
			defer l.Unlock()
			return next(c)
		}
	}
}
