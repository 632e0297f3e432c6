package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"vinoscan/internal/storage"
	"vinoscan/internal/wine"
)

// Catalog is the authoritative ordered collection of wine entries, freshest
// first. It is not safe for concurrent use; callers serialize mutations, as
// the CLI does by construction.
type Catalog struct {
	store   storage.Store
	logger  *slog.Logger
	entries []wine.Entry
	now     func() time.Time
}

// Open loads the persisted cellar through the given store. A corrupt blob
// yields a usable empty catalog together with a *LoadError so callers can
// warn and continue.
func Open(ctx context.Context, store storage.Store, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cat := &Catalog{
		store:   store,
		logger:  logger,
		entries: []wine.Entry{},
		now:     time.Now,
	}

	blob, err := store.Load(ctx)
	if err != nil {
		return cat, &LoadError{Err: err}
	}
	if blob == nil {
		return cat, nil
	}

	entries, err := decodeEntries(blob)
	if err != nil {
		logger.Warn("cellar blob is corrupt, starting empty", "error", err)
		return cat, &LoadError{Err: err}
	}
	cat.entries = entries
	return cat, nil
}

// Len returns the total number of entries across both partitions.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// TrashCount returns the number of soft-deleted entries.
func (c *Catalog) TrashCount() int {
	count := 0
	for i := range c.entries {
		if c.entries[i].Deleted() {
			count++
		}
	}
	return count
}

// Entries returns a deep-copied snapshot in collection order.
func (c *Catalog) Entries() []wine.Entry {
	out := make([]wine.Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry.Clone())
	}
	return out
}

// Get returns a copy of the entry with the given id.
func (c *Catalog) Get(id string) (wine.Entry, error) {
	for i := range c.entries {
		if c.entries[i].ID == id {
			return c.entries[i].Clone(), nil
		}
	}
	return wine.Entry{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
}

// Insert prepends the entry so the freshest appears first in default views.
// Uniqueness is by id only; duplicate names and makers are allowed.
func (c *Catalog) Insert(ctx context.Context, entry wine.Entry) error {
	c.entries = append([]wine.Entry{entry.Clone()}, c.entries...)
	c.logger.Info("entry added", "id", entry.ID, "name", entry.Name)
	return c.persist(ctx)
}

// ImportBatch prepends the parsed entries ahead of the existing collection,
// keeping their parsed order.
func (c *Catalog) ImportBatch(ctx context.Context, entries []wine.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := make([]wine.Entry, 0, len(entries))
	for _, entry := range entries {
		batch = append(batch, entry.Clone())
	}
	c.entries = append(batch, c.entries...)
	c.logger.Info("entries imported", "count", len(entries))
	return c.persist(ctx)
}

// Update replaces the record whose id matches. CreatedAt is preserved from
// the stored record; edits never move an entry in default ordering.
func (c *Catalog) Update(ctx context.Context, entry wine.Entry) error {
	for i := range c.entries {
		if c.entries[i].ID == entry.ID {
			replacement := entry.Clone()
			replacement.CreatedAt = c.entries[i].CreatedAt
			c.entries[i] = replacement
			c.logger.Info("entry updated", "id", entry.ID)
			return c.persist(ctx)
		}
	}
	return fmt.Errorf("update %q: %w", entry.ID, ErrNotFound)
}

// SoftDelete moves the entry to the trash partition. Re-deleting a trashed
// entry just refreshes the timestamp.
func (c *Catalog) SoftDelete(ctx context.Context, id string) error {
	for i := range c.entries {
		if c.entries[i].ID == id {
			ts := c.now().UnixMilli()
			c.entries[i].DeletedAt = &ts
			c.logger.Info("entry moved to trash", "id", id)
			return c.persist(ctx)
		}
	}
	return fmt.Errorf("delete %q: %w", id, ErrNotFound)
}

// Restore clears the trash marker. Restoring a purged or unknown id reports
// ErrNotFound.
func (c *Catalog) Restore(ctx context.Context, id string) error {
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries[i].DeletedAt = nil
			c.logger.Info("entry restored", "id", id)
			return c.persist(ctx)
		}
	}
	return fmt.Errorf("restore %q: %w", id, ErrNotFound)
}

// Purge removes the entry permanently. The confirmed flag must be set by the
// caller-facing boundary; purging is unrecoverable.
func (c *Catalog) Purge(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("purge %q: %w", id, ErrConfirmationRequired)
	}
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.logger.Info("entry permanently deleted", "id", id)
			return c.persist(ctx)
		}
	}
	return fmt.Errorf("purge %q: %w", id, ErrNotFound)
}

// persist serializes the full collection to durable storage. Write failures
// are reported as *WriteError; the in-memory state keeps the mutation.
func (c *Catalog) persist(ctx context.Context) error {
	blob, err := encodeEntries(c.entries)
	if err != nil {
		return &WriteError{Err: err}
	}
	if err := c.store.Save(ctx, blob); err != nil {
		c.logger.Warn("cellar save failed, keeping in-memory state", "error", err)
		return &WriteError{Err: err}
	}
	return nil
}
