package server

import (
	"sync"

	"github.com/pressplan/pressplan/internal/undo"
)

// sessions holds one undo slot per acting user. The slot is created lazily
// on first use and lives for the life of the server process.
type sessions struct {
	mu sync.Mutex
	m  map[string]*undo.State
}

func newSessions() *sessions {
	return &sessions{m: map[string]*undo.State{}}
}

// forUser returns the caller's undo state, creating it if needed.
func (s *sessions) forUser(userID string) *undo.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[userID]
	if !ok {
		st = &undo.State{}
		s.m[userID] = st
	}
	return st
}
