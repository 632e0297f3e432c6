// Package testsupport provides shared builders for package tests.
package testsupport

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"testing"

	"vinoscan/internal/catalog"
	"vinoscan/internal/config"
	"vinoscan/internal/logging"
	"vinoscan/internal/storage"
	"vinoscan/internal/wine"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Storage.Backend = "file"
	cfg.Analysis.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("create config directories: %v", err)
	}
	return &cfg
}

// WithBackend overrides the storage backend on the test config.
func WithBackend(backend string) ConfigOption {
	return func(c *config.Config) {
		c.Storage.Backend = backend
	}
}

// WithQuota caps the serialized cellar size, in KiB.
func WithQuota(kib int) ConfigOption {
	return func(c *config.Config) {
		c.Storage.MaxBlobKiB = kib
	}
}

// MustOpenCatalog opens a catalog backed by the config's store and registers
// cleanup. It fails the test on any open error, including recoverable load
// errors.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Catalog {
	t.Helper()

	store, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	cat, err := catalog.Open(context.Background(), store, logging.Discard())
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	return cat
}

// Entry builds a populated active entry for tests. The name seeds the fields
// so assertions read naturally.
func Entry(name string) wine.Entry {
	entry := wine.NewEntry()
	entry.Name = name
	entry.Maker = name + " Estate"
	entry.Year = "2020"
	entry.Type = wine.TypeRed
	entry.Price = "25.00"
	entry.BinNumber = "A1"
	return entry
}

// TrashedEntry builds an entry already sitting in the trash partition.
func TrashedEntry(name string, deletedAt int64) wine.Entry {
	entry := Entry(name)
	entry.DeletedAt = &deletedAt
	return entry
}

// ImageDataURL wraps raw bytes in the data-URL form the gallery stores.
func ImageDataURL(raw []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
}
