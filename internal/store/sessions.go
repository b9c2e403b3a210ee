package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"solohub/internal/types"
)

// MemorySessionStore is the in-memory SessionStorage implementation. Like
// Memory it hands out clones, so the AI hub's in-flight session can never
// alias stored state.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*types.ChatSession
}

// NewMemorySessionStore creates an empty session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*types.ChatSession)}
}

// Save stores the session as handed over, keyed by its id.
func (s *MemorySessionStore) Save(ctx context.Context, session *types.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Get returns a clone of the session or types.ErrNotFound.
func (s *MemorySessionStore) Get(ctx context.Context, id string) (*types.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, types.ErrNotFound)
	}
	return session.Clone(), nil
}

// GetAll returns every session, newest-touched first.
func (s *MemorySessionStore) GetAll(ctx context.Context) ([]*types.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return ByUpdatedDesc(out[i], out[j]) })
	return out, nil
}

// Delete removes the session and its whole transcript.
func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %q: %w", id, types.ErrNotFound)
	}
	delete(s.sessions, id)
	return nil
}
