package session

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-process Store. It backs tests and
// single-node development runs without Redis; it never expires entries.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
}

type memorySession struct {
	state State
	flash map[Severity][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memorySession)}
}

func (s *MemoryStore) Load(_ context.Context, token string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		return sess.state, nil
	}
	return State{}, nil
}

func (s *MemoryStore) Bind(_ context.Context, token string, userID int64, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(token).state = State{UserID: userID, Username: username}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) PushFlash(_ context.Context, token string, severity Severity, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(token)
	sess.flash[severity] = append(sess.flash[severity], message)
	return nil
}

func (s *MemoryStore) DrainFlash(_ context.Context, token string) (map[Severity][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || len(sess.flash) == 0 {
		return map[Severity][]string{}, nil
	}
	out := sess.flash
	sess.flash = make(map[Severity][]string)
	return out, nil
}

// get returns the session for token, creating it if absent. Callers hold mu.
func (s *MemoryStore) get(token string) *memorySession {
	sess, ok := s.sessions[token]
	if !ok {
		sess = &memorySession{flash: make(map[Severity][]string)}
		s.sessions[token] = sess
	}
	return sess
}
