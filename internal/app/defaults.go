package app

import (
	"fmt"
	"os"
	"path/filepath"

	"nutrilog/internal/config"
)

// Environment overrides for the default locations.
const (
	envConfigPath = "NUTRILOG_CONFIG_PATH"
	envHome       = "NUTRILOG_HOME"
)

// GetDefaults returns the default locations of the config file and of the
// data nutrilog keeps under its home directory:
//
//	config_path  ~/.config/nutrilog.toml        ($NUTRILOG_CONFIG_PATH)
//	base_dir     ~/.local/share/nutrilog        ($NUTRILOG_HOME)
//	log_dir      <base_dir>/log
//	state_dir    <base_dir>/state               filesystem store
//	sqlite_path  <base_dir>/nutrilog.db         sqlite store
//	key_dir      <base_dir>/keys                age key pair
func GetDefaults() (map[string]string, error) {
	home, err := os.UserHomeDir()
	if err != nil && (os.Getenv(envConfigPath) == "" || os.Getenv(envHome) == "") {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	configPath := os.Getenv(envConfigPath)
	if configPath == "" {
		configPath = filepath.Join(home, ".config", "nutrilog.toml")
	}
	baseDir := os.Getenv(envHome)
	if baseDir == "" {
		baseDir = filepath.Join(home, ".local", "share", "nutrilog")
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"state_dir":   filepath.Join(baseDir, "state"),
		"sqlite_path": filepath.Join(baseDir, "nutrilog.db"),
		"key_dir":     filepath.Join(baseDir, "keys"),
	}, nil
}

// DefaultConfig builds the config written by "config init" for the chosen
// store and encryption types. Empty strings select sqlite and no encryption.
// Local stores get their paths from GetDefaults; network stores are left
// for the user to fill in.
func DefaultConfig(defaults map[string]string, storeType, encryptionType string) (*config.Config, error) {
	cfg := config.NewConfig(defaults["base_dir"])
	cfg.LogDir = defaults["log_dir"]
	cfg.Encryption.PublicKeyPath = filepath.Join(defaults["key_dir"], "nutrilog.pub")
	cfg.Encryption.PrivateKeyPath = filepath.Join(defaults["key_dir"], "nutrilog.key")

	switch storeType {
	case "", "sqlite":
		cfg.Store = config.StoreConfig{Type: "sqlite", SQLitePath: defaults["sqlite_path"]}
	case "filesystem":
		cfg.Store = config.StoreConfig{Type: "filesystem", Dir: defaults["state_dir"]}
	case "memory", "postgres", "redis", "s3":
		cfg.Store = config.StoreConfig{Type: storeType}
	default:
		return nil, fmt.Errorf("unknown store type %q", storeType)
	}

	switch encryptionType {
	case "", "none":
		cfg.Encryption.Type = "none"
	case "age":
		cfg.Encryption.Type = "age"
	default:
		return nil, fmt.Errorf("unknown encryption type %q", encryptionType)
	}
	return cfg, nil
}
