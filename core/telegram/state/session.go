package state

// Key identifies a conversation participant. The same user talking in two
// chats holds two independent sessions.
type Key struct {
	UserID int64
	ChatID int64
}

// Scratch is the session's working memory: answers collected step by step,
// iterated in the order they were first set.
type Scratch struct {
	values map[string]any
	order  []string
}

func newScratch() *Scratch {
	return &Scratch{values: make(map[string]any)}
}

// Set stores a value, keeping first-set ordering on overwrite.
func (s *Scratch) Set(key string, value any) {
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Get returns a stored value.
func (s *Scratch) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// String returns a stored string value, or "" when absent or mistyped.
func (s *Scratch) String(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return ""
}

// Int64 returns a stored int64 value.
func (s *Scratch) Int64(key string) (int64, bool) {
	v, ok := s.values[key].(int64)
	return v, ok
}

// Delete removes a key.
func (s *Scratch) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Keys returns the stored keys in insertion order.
func (s *Scratch) Keys() []string {
	return append([]string(nil), s.order...)
}

// Len reports the number of stored keys.
func (s *Scratch) Len() int { return len(s.values) }

// Session is one in-flight conversation: its key, the group being walked,
// the current state, and the scratch answers.
type Session struct {
	Key     Key
	Group   Group
	Current State
	Scratch *Scratch
}
