package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pathsync/core/backend"
	"pathsync/core/backend/httpstore"
	"pathsync/core/backend/memory"
	"pathsync/core/backend/objectstore"
	"pathsync/core/backend/sqlstore"
	"pathsync/core/codec"
	"pathsync/core/database"
	"pathsync/core/storage"
)

// ErrUnknownBackend is returned by OpenBackend for an unsupported kind.
var ErrUnknownBackend = errors.New("config: unknown backend kind")

// Backend kinds accepted in sync.local and sync.remote.
const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
	BackendStorage  = "storage"
	BackendHTTP     = "http"
)

// OpenBackend builds the backend of the given kind. role ("local" or "remote") keeps
// two backends of the same kind apart: it suffixes the table name and the object prefix.
func OpenBackend(ctx context.Context, kind string, cfg *Config, role string) (backend.Backend[string], error) {
	switch kind {
	case BackendMemory:
		return memory.New[string](), nil

	case BackendDatabase:
		c, err := itemCodec(cfg)
		if err != nil {
			return nil, err
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(ctx, db, cfg.Database.Table+"_"+role, c)

	case BackendStorage:
		c, err := itemCodec(cfg)
		if err != nil {
			return nil, err
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket); err != nil {
			return nil, err
		}
		return objectstore.New(client, cfg.Storage.Bucket, cfg.Storage.Prefix+"/"+role, c), nil

	case BackendHTTP:
		return httpstore.New(cfg.Sync.RemoteURL, cfg.Sync.RemoteAPIKey, codec.String(),
			httpstore.WithTimeout(30*time.Second),
			httpstore.WithRetry(3, time.Second),
		), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

func itemCodec(cfg *Config) (codec.Codec[string], error) {
	if !cfg.Sync.Compress {
		return codec.String(), nil
	}
	return codec.Zstd(codec.String(), 2)
}
