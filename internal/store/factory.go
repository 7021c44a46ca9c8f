package store

import (
	"context"
	"fmt"

	"nutrilog/internal/config"
)

// NewBackendFromConfig creates a Backend based on the store config type.
func NewBackendFromConfig(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	b, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// newBackend may return a typed nil alongside an error; NewBackendFromConfig
// normalizes that to a nil interface.
func newBackend(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryBackend(), nil
	case "filesystem":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("dir required for filesystem store")
		}
		return NewFileSystemBackend(cfg.Dir)
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite_path required for sqlite store")
		}
		return NewSQLiteBackend(cfg.SQLitePath)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres_dsn required for postgres store")
		}
		return NewPostgresBackend(ctx, cfg.PostgresDSN)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis_addr required for redis store")
		}
		return NewRedisBackend(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "s3":
		return NewS3Backend(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}

// NewStoreFromConfig creates the backend described by cfg and wraps it in a
// BlobStore using codec.
func NewStoreFromConfig(ctx context.Context, cfg config.StoreConfig, codec Codec) (*BlobStore, error) {
	backend, err := NewBackendFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewBlobStore(backend, codec, cfg.Key), nil
}
