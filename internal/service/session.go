package service

import (
	"sync"

	"travel_journal/internal/models"
)

// Session is the identity a tab is acting as. The zero value is logged out.
type Session struct {
	User  *models.User
	Token string
}

// SessionStore holds one tab's session in memory. It is never persisted, so a
// reload (new tab runtime) always starts logged out.
//
// The tab loop is the only writer; API calls read the token from worker goroutines.
type SessionStore struct {
	mu  sync.RWMutex
	cur Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Set overwrites the session unconditionally.
func (s *SessionStore) Set(user models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{User: &user, Token: token}
}

// Clear logs the tab out.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{}
}

// Get returns a copy of the current session.
func (s *SessionStore) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.cur
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Token implements repository.TokenSource.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}
