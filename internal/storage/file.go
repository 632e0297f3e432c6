package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
)

const (
	cellarFileName = "cellar.json"
	lockFileName   = "cellar.lock"
)

// FileStore persists the cellar blob as a single JSON file. An advisory lock
// enforces one writer at a time across concurrent CLI invocations.
type FileStore struct {
	path     string
	maxBytes int64
	lock     *flock.Flock
}

// OpenFile opens (or prepares) a file-backed store rooted at dataDir and
// acquires the cellar lock. maxBytes of 0 disables the quota.
func OpenFile(dataDir string, maxBytes int64) (*FileStore, error) {
	lock := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cellar lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("cellar at %s is in use by another process", dataDir)
	}
	return &FileStore{
		path:     filepath.Join(dataDir, cellarFileName),
		maxBytes: maxBytes,
		lock:     lock,
	}, nil
}

// Load returns the stored blob, or nil when the cellar file does not exist.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cellar file: %w", err)
	}
	return data, nil
}

// Save writes the blob via a temp file and rename so a failed write never
// corrupts the previous blob.
func (s *FileStore) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkQuota(blob, s.maxBytes); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, cellarFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cellar file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("write cellar file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp cellar file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace cellar file: %w", err)
	}
	return nil
}

// Close releases the cellar lock.
func (s *FileStore) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Path returns the cellar file location, for diagnostics.
func (s *FileStore) Path() string {
	return s.path
}
