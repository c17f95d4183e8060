package memory

import (
	"context"
	"sync"

	"github.com/aretw0/switchyard/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	path    domain.Path
	corrupt bool
	saveErr error
	saves   int
	mu      sync.RWMutex
}

// StoreOption configures the in-memory store.
type StoreOption func(*Store)

// WithPath seeds the store with a previously saved path.
func WithPath(path domain.Path) StoreOption {
	return func(s *Store) {
		s.path = path.Clone()
	}
}

// WithCorruptRecord makes Load behave as if the record could not be parsed.
func WithCorruptRecord() StoreOption {
	return func(s *Store) {
		s.corrupt = true
	}
}

// WithSaveError makes every Save fail with err.
func WithSaveError(err error) StoreOption {
	return func(s *Store) {
		s.saveErr = err
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save replaces the stored path.
func (s *Store) Save(ctx context.Context, path domain.Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	// Copy to ensure isolation, similar to serialization
	s.path = path.Clone()
	s.corrupt = false
	s.saves++
	return nil
}

// Load returns a copy of the stored path.
func (s *Store) Load(ctx context.Context) (domain.Path, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.corrupt || len(s.path) == 0 {
		return nil, false, nil
	}
	return s.path.Clone(), true, nil
}

// Saves reports how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
