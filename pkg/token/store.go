package token

import (
	"fmt"
	"sync"
)

// NotPresentError is returned by Store.Update when the key has no current
// Token. It carries the offending key so callers can build a precise
// InvalidArgument status.
type NotPresentError struct {
	Key Key
}

func (e *NotPresentError) Error() string {
	return fmt.Sprintf("token %q not present", string(e.Key))
}

// Store is a keyed map of Key to Token, guarded by a single exclusive lock.
// All three operations run under that lock; in particular Update's
// read-modify-write is one critical section, never two. Releasing and
// re-acquiring the lock between the read and the write of Update would let
// a concurrent Update or Insert on the same key interleave and would break
// the invariant that Original reflects exactly the prior committed Token.
type Store struct {
	mu    sync.Mutex
	byKey map[Key]Token
}

// NewStore creates an empty Token Store.
func NewStore() *Store {
	return &Store{byKey: make(map[Key]Token)}
}

// Insert creates a new Token for key and writes it into the store,
// replacing any existing entry. Never fails for a well-formed key.
func (s *Store) Insert(key Key) Token {
	t := New(key)

	s.mu.Lock()
	s.byKey[key] = t
	s.mu.Unlock()

	return t
}

// Update atomically reads the current Token for key, mints a fresh one, and
// writes it back, returning both. Fails with *NotPresentError if key has no
// current entry. The entire read-modify-write executes under one lock
// acquisition.
func (s *Store) Update(key Key) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.byKey[key]
	if !ok {
		return Update{}, &NotPresentError{Key: key}
	}

	delta := New(key)
	s.byKey[key] = delta

	return Update{Original: original, Delta: delta}, nil
}

// Invalidate removes key from the store. A no-op if key was not present.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	delete(s.byKey, key)
	s.mu.Unlock()
}

// Get returns the current Token for key, if any. Provided for tests and
// diagnostics, not part of the mutation API.
func (s *Store) Get(key Key) (Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byKey[key]
	return t, ok
}

// Len reports the number of tokens currently registered.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}
