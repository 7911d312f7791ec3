package language

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Backend is the persistent side of a RedisStore.
type Backend interface {
	SetUserLanguage(userID, lang string) error
	GetUserLanguage(userID string) (string, bool, error)
}

// RedisStore writes preferences through to a Backend and keeps a local copy,
// so a backend outage degrades to process-lifetime behaviour.
type RedisStore struct {
	backend Backend
	cache   *MemoryStore

	mu sync.Mutex
	// unsynced holds users whose latest choice never reached the backend.
	// Their local value wins over whatever the backend still has.
	unsynced map[string]struct{}
}

func NewRedisStore(backend Backend, defaultLang string) *RedisStore {
	return &RedisStore{
		backend:  backend,
		cache:    NewMemoryStore(defaultLang),
		unsynced: make(map[string]struct{}),
	}
}

func (s *RedisStore) Set(userID, lang string) {
	s.cache.Set(userID, lang)
	s.persist(userID, lang)
}

func (s *RedisStore) Get(userID string) string {
	if s.pending(userID) {
		lang := s.cache.Get(userID)
		s.persist(userID, lang)
		return lang
	}

	lang, found, err := s.backend.GetUserLanguage(userID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("Error reading user language, using local value")
		return s.cache.Get(userID)
	}

	if !found {
		return s.cache.Get(userID)
	}

	s.cache.Set(userID, lang)
	return lang
}

func (s *RedisStore) pending(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.unsynced[userID]
	return ok
}

// persist writes lang to the backend and tracks whether it got there.
func (s *RedisStore) persist(userID, lang string) {
	err := s.backend.SetUserLanguage(userID, lang)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.unsynced[userID] = struct{}{}
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("language", lang).
			Msg("Error persisting user language")
		return
	}
	delete(s.unsynced, userID)
}
