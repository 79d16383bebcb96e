package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/sentiscope/pkg/sentiscope/internalerr"
	"github.com/cognicore/sentiscope/pkg/sentiscope/post"
	"github.com/cognicore/sentiscope/pkg/sentiscope/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	cleaned []post.CleanedPost
	labeled []post.LabeledPost
	hasC    bool
	hasL    bool
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// WriteCleaned implements store.Store.
func (s *Store) WriteCleaned(ctx context.Context, posts []post.CleanedPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleaned = append([]post.CleanedPost(nil), posts...)
	s.hasC = true
	return nil
}

// ReadCleaned implements store.Store.
func (s *Store) ReadCleaned(ctx context.Context) ([]post.CleanedPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasC {
		return nil, fmt.Errorf("%w: no cleaned table", internalerr.ErrInputNotFound)
	}
	return append([]post.CleanedPost(nil), s.cleaned...), nil
}

// WriteLabeled implements store.Store.
func (s *Store) WriteLabeled(ctx context.Context, posts []post.LabeledPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labeled = append([]post.LabeledPost(nil), posts...)
	s.hasL = true
	return nil
}

// ReadLabeled implements store.Store.
func (s *Store) ReadLabeled(ctx context.Context) ([]post.LabeledPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasL {
		return nil, fmt.Errorf("%w: no labeled table", internalerr.ErrInputNotFound)
	}
	return append([]post.LabeledPost(nil), s.labeled...), nil
}
