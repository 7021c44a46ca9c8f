package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"nutrilog/internal/nutri"
)

// ErrLocked is returned when decoding encrypted state without a
// DecryptionContext.
var ErrLocked = errors.New("state is encrypted and no key is unlocked")

// Codec converts the state to and from its stored bytes.
type Codec interface {
	Encode(state *nutri.AppState) ([]byte, error)
	Decode(data []byte) (*nutri.AppState, error)
}

// JSONCodec stores the state as plain JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(state *nutri.AppState) ([]byte, error) {
	return json.Marshal(state)
}

func (JSONCodec) Decode(data []byte) (*nutri.AppState, error) {
	var state nutri.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// EncryptedCodec wraps another codec with an Encryptor. Encoding only needs
// the public key; decoding needs an unlocked DecryptionContext.
type EncryptedCodec struct {
	inner     Codec
	encryptor nutri.Encryptor
	dec       nutri.DecryptionContext
}

// NewEncryptedCodec creates an EncryptedCodec. dec may be nil for a
// write-only codec.
func NewEncryptedCodec(inner Codec, encryptor nutri.Encryptor, dec nutri.DecryptionContext) *EncryptedCodec {
	return &EncryptedCodec{inner: inner, encryptor: encryptor, dec: dec}
}

func (c *EncryptedCodec) Encode(state *nutri.AppState) ([]byte, error) {
	plain, err := c.inner.Encode(state)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := c.encryptor.Encrypt(bytes.NewReader(plain), &out); err != nil {
		return nil, fmt.Errorf("encrypting state: %w", err)
	}
	return out.Bytes(), nil
}

func (c *EncryptedCodec) Decode(data []byte) (*nutri.AppState, error) {
	if c.dec == nil {
		return nil, ErrLocked
	}
	var plain bytes.Buffer
	if err := c.dec.Decrypt(bytes.NewReader(data), &plain); err != nil {
		return nil, fmt.Errorf("decrypting state: %w", err)
	}
	return c.inner.Decode(plain.Bytes())
}
