package store

import (
	"context"
	"errors"
	"fmt"

	"nutrilog/internal/nutri"
)

// DefaultKey is the key the application state is saved under.
const DefaultKey = "app_state"

// ErrNotFound is returned by a Backend when no blob exists for a key.
var ErrNotFound = errors.New("blob not found")

// Backend is a minimal key/blob store. Put replaces the blob atomically:
// a reader sees either the previous or the new value, never a mix.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// BlobStore implements nutri.Store by encoding the whole state with a Codec
// and saving it under a single key of a Backend.
type BlobStore struct {
	backend Backend
	codec   Codec
	key     string
}

var _ nutri.Store = (*BlobStore)(nil)

// NewBlobStore creates a BlobStore. An empty key means DefaultKey.
func NewBlobStore(backend Backend, codec Codec, key string) *BlobStore {
	if key == "" {
		key = DefaultKey
	}
	return &BlobStore{backend: backend, codec: codec, key: key}
}

// LoadState reads and decodes the saved state.
// Returns nutri.ErrNoState if nothing was saved yet.
func (s *BlobStore) LoadState(ctx context.Context) (*nutri.AppState, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nutri.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.key, err)
	}

	state, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.key, err)
	}
	return state, nil
}

// SaveState encodes state and replaces the saved blob.
func (s *BlobStore) SaveState(ctx context.Context, state *nutri.AppState) error {
	data, err := s.codec.Encode(state)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.key, err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}
	return nil
}

// DeleteState removes the saved blob. Deleting a missing blob is not an
// error; the next LoadState reports nutri.ErrNoState.
func (s *BlobStore) DeleteState(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("deleting %s: %w", s.key, err)
	}
	return nil
}

// Close closes the underlying backend.
func (s *BlobStore) Close() error {
	return s.backend.Close()
}
