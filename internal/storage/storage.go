// Package storage provides the durable blob boundary backing the catalog.
//
// The cellar persists as one serialized blob under a single key, mirroring
// the browser-storage model the data format originates from: Load returns
// the whole blob or nil when nothing was saved yet, Save replaces it
// atomically. Two implementations exist, a plain JSON file guarded by an
// advisory lock and a SQLite key/value table; both enforce the configured
// size quota and surface overruns as ErrQuotaExceeded so callers can warn
// without losing in-memory state.
package storage

import (
	"context"
	"errors"
	"fmt"

	"vinoscan/internal/config"
)

// ErrQuotaExceeded marks a save rejected because the serialized cellar grew
// past the configured cap (or the underlying device is out of space). The
// previously stored blob is left intact.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is the durable blob boundary consumed by the catalog.
type Store interface {
	// Load returns the saved blob, or nil when nothing has been saved.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored blob. A failed save leaves the previous blob
	// in place.
	Save(ctx context.Context, blob []byte) error
	Close() error
}

// Open constructs the store selected by the configuration.
func Open(cfg *config.Config) (Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	maxBytes := int64(cfg.Storage.MaxBlobKiB) * 1024
	switch cfg.Storage.Backend {
	case "file":
		return OpenFile(cfg.Paths.DataDir, maxBytes)
	case "sqlite":
		return OpenSQLite(cfg.Paths.DataDir, maxBytes)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func checkQuota(blob []byte, maxBytes int64) error {
	if maxBytes > 0 && int64(len(blob)) > maxBytes {
		return fmt.Errorf("%w: blob is %d bytes, cap is %d", ErrQuotaExceeded, len(blob), maxBytes)
	}
	return nil
}
