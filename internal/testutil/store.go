package testutil

import (
	"context"
	"sync"

	"nutrilog/internal/nutri"
	"nutrilog/internal/store"
)

// FlakyStore is an in-memory nutri.Store whose saves can be made to fail.
type FlakyStore struct {
	mu      sync.Mutex
	inner   *store.BlobStore
	saveErr error
	saves   int
}

var _ nutri.Store = (*FlakyStore)(nil)

// NewFlakyStore creates an empty FlakyStore that saves successfully.
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{
		inner: store.NewBlobStore(store.NewMemoryBackend(), store.JSONCodec{}, ""),
	}
}

// FailSaves makes every following SaveState return err. Pass nil to recover.
func (s *FlakyStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves returns the number of successful saves.
func (s *FlakyStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *FlakyStore) LoadState(ctx context.Context) (*nutri.AppState, error) {
	return s.inner.LoadState(ctx)
}

func (s *FlakyStore) SaveState(ctx context.Context, state *nutri.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if err := s.inner.SaveState(ctx, state); err != nil {
		return err
	}
	s.saves++
	return nil
}

func (s *FlakyStore) Close() error { return s.inner.Close() }
