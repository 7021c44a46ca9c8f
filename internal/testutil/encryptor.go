package testutil

import (
	"nutrilog/internal/encryption"
	"nutrilog/internal/nutri"
)

// NewTestEncryptor creates a deterministic encryptor for testing.
func NewTestEncryptor() nutri.Encryptor {
	return encryption.NewTestEncryptor()
}
