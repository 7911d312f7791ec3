// Package language keeps the per-user language preference used for every
// backend call.
package language

import "sync"

// Store maps an internal user ID to a language tag.
type Store interface {
	Set(userID, lang string)
	Get(userID string) string
}

// MemoryStore is a process-lifetime Store. Preferences are lost on restart.
type MemoryStore struct {
	defaultLang string
	languages   map[string]string
	mutex       sync.RWMutex
}

func NewMemoryStore(defaultLang string) *MemoryStore {
	return &MemoryStore{
		defaultLang: defaultLang,
		languages:   make(map[string]string),
	}
}

// Set overwrites any previous preference for the user.
func (s *MemoryStore) Set(userID, lang string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.languages[userID] = lang
}

// Get returns the stored preference or the default tag.
func (s *MemoryStore) Get(userID string) string {
	lang, ok := s.lookup(userID)
	if !ok {
		return s.defaultLang
	}
	return lang
}

func (s *MemoryStore) lookup(userID string) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	lang, ok := s.languages[userID]
	return lang, ok
}

// Default returns the tag used for users without a preference.
func (s *MemoryStore) Default() string {
	return s.defaultLang
}
