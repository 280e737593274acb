package services

import (
	"sync"

	"arizabot/internal/models"
)

// SessionStore keeps one Session per chat. Sessions are created idle on
// first access and never survive a restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*models.Session)}
}

// Get returns the session for a chat, creating an idle one if needed.
func (s *SessionStore) Get(chatID int64) *models.Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[chatID]; ok {
		return sess
	}
	sess = &models.Session{ChatID: chatID, State: models.StateIdle}
	s.sessions[chatID] = sess
	return sess
}

// Clear resets a chat's session back to idle, draft discarded.
func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		sess.Reset()
	}
}
