package encryption

import (
	"fmt"

	"nutrilog/internal/config"
	"nutrilog/internal/nutri"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
// It returns a nil Encryptor for type "none", meaning the state is stored
// as plain JSON.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (nutri.Encryptor, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "age":
		if cfg.PublicKeyPath == "" || cfg.PrivateKeyPath == "" {
			return nil, fmt.Errorf("public_key_path and private_key_path required for age encryption")
		}
		return NewAgeEncryptor(cfg.PublicKeyPath, cfg.PrivateKeyPath), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
