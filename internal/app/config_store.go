package app

import (
	"sync"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/rs/zerolog/log"
)

const DefaultHistoryLimit = 64

// ConfigStore holds the current SessionConfig and the values it replaced.
// history[cursor] is the current value; entries after cursor are the redo tail.
type ConfigStore struct {
	mu      sync.RWMutex
	history []domain.SessionConfig
	cursor  int
	limit   int
}

func NewConfigStore(initial domain.SessionConfig, limit int) *ConfigStore {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &ConfigStore{
		history: []domain.SessionConfig{initial},
		limit:   limit,
	}
}

func (s *ConfigStore) Current() domain.SessionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history[s.cursor]
}

// Dispatch applies u to the current config. The redo tail is discarded.
func (s *ConfigStore) Dispatch(u domain.FieldUpdate) (domain.SessionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.history[s.cursor].With(u)
	if err != nil {
		return s.history[s.cursor], err
	}
	s.history = append(s.history[:s.cursor+1], next)
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
	s.cursor = len(s.history) - 1
	log.Debug().Str("module", "app.config").Str("field", string(u.Field)).Msg("config updated")
	return next, nil
}

func (s *ConfigStore) Undo() (domain.SessionConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return s.history[0], false
	}
	s.cursor--
	return s.history[s.cursor], true
}

func (s *ConfigStore) Redo() (domain.SessionConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == len(s.history)-1 {
		return s.history[s.cursor], false
	}
	s.cursor++
	return s.history[s.cursor], true
}

// Reset replaces the whole history with cfg.
func (s *ConfigStore) Reset(cfg domain.SessionConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = []domain.SessionConfig{cfg}
	s.cursor = 0
}
