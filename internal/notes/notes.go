// Package notes defines the contract for the per-case personal notes
// feature. Notes live with the requester (localStorage in the browser,
// see static/notes.js), never on the server: last write wins, no conflict
// detection, no server visibility. The Store interface exists so tests
// (and any future native client) can exercise the contract in memory.
package notes

import "sync"

// Key returns the storage key a client uses for a case's notes blob.
// The browser widget and any Store implementation must agree on it.
func Key(caseID string) string { return "notes-" + caseID }

// Store is a key-value blob store scoped by case id.
type Store interface {
	// Get returns the notes blob for a case, and whether one exists.
	Get(caseID string) (string, bool)
	// Put overwrites the blob unconditionally (last write wins).
	Put(caseID, text string)
	// Delete removes the blob, if present.
	Delete(caseID string)
}

// MemStore is the in-memory Store used by tests.
type MemStore struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemStore() *MemStore { return &MemStore{m: map[string]string{}} }

func (s *MemStore) Get(caseID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[Key(caseID)]
	return v, ok
}

func (s *MemStore) Put(caseID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[Key(caseID)] = text
}

func (s *MemStore) Delete(caseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, Key(caseID))
}
