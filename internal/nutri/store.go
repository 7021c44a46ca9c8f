package nutri

import (
	"context"
	"io"
)

// Store persists the whole AppState as one opaque blob.
// SaveState must be all-or-nothing from the caller's point of view.
type Store interface {
	// LoadState returns the saved state, or ErrNoState if none exists.
	LoadState(ctx context.Context) (*AppState, error)

	// SaveState replaces the saved state with state.
	SaveState(ctx context.Context, state *AppState) error

	// Close releases any connection held by the store.
	Close() error
}

// Encryptor encrypts the state blob at rest.
// Encryption uses the public key only. Decryption requires a passphrase to
// unlock the private key, producing a DecryptionContext for the session.
type Encryptor interface {
	// Setup performs one-time key generation and protects the private key
	// with passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key using the passphrase.
	// Returns an error if the passphrase is incorrect.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured returns true if the key material exists.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for the
// duration of a session. It is never written to disk.
type DecryptionContext interface {
	// Decrypt decrypts data read from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error
}
