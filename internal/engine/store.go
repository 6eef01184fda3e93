package engine

import (
	"context"
	"sync"
)

// SessionStore persists conversation sessions between turns. Load returns
// (nil, nil) when no session exists for the id.
type SessionStore interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// MemorySessionStore is an in-process SessionStore for tests and the
// single-node dev setup.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

func (s *MemorySessionStore) Load(_ context.Context, id string) (*Session, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	if session.Appointment != nil {
		draft := *session.Appointment
		copied.Appointment = &draft
	}
	copied.History = append([]string(nil), session.History...)
	return &copied, nil
}

func (s *MemorySessionStore) Save(_ context.Context, session *Session) error {
	if s == nil || session == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	if session.Appointment != nil {
		draft := *session.Appointment
		copied.Appointment = &draft
	}
	copied.History = append([]string(nil), session.History...)
	s.sessions[session.ID] = &copied
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
