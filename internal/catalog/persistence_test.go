package catalog_test

import (
	"context"
	"testing"

	"vinoscan/internal/catalog"
	"vinoscan/internal/logging"
	"vinoscan/internal/storage"
	"vinoscan/internal/testsupport"
)

func TestPersistenceAcrossReopenSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testsupport.NewConfig(t, testsupport.WithBackend("sqlite"))

	first := testsupport.MustOpenCatalog(t, cfg)
	older := testsupport.Entry("Older Bottle")
	newer := testsupport.Entry("Newer Bottle")
	newer.ImageURLs = []string{testsupport.ImageDataURL([]byte("label"))}
	if err := first.Insert(ctx, older); err != nil {
		t.Fatalf("insert older: %v", err)
	}
	if err := first.Insert(ctx, newer); err != nil {
		t.Fatalf("insert newer: %v", err)
	}

	second := testsupport.MustOpenCatalog(t, cfg)
	entries := second.Entries()
	if len(entries) != 2 {
		t.Fatalf("reopened catalog has %d entries, want 2", len(entries))
	}
	if entries[0].Name != "Newer Bottle" || entries[1].Name != "Older Bottle" {
		t.Errorf("collection order lost across reopen: %q, %q", entries[0].Name, entries[1].Name)
	}
	if len(entries[0].ImageURLs) != 1 || entries[0].ImageURLs[0] != newer.ImageURLs[0] {
		t.Errorf("image gallery not persisted")
	}
}

func TestPersistenceAcrossReopenFile(t *testing.T) {
	ctx := context.Background()
	cfg := testsupport.NewConfig(t)

	store, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	cat, err := catalog.Open(ctx, store, logging.Discard())
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	trashed := testsupport.TrashedEntry("Trashed Bottle", 1700000000000)
	if err := cat.Insert(ctx, testsupport.Entry("Kept Bottle")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := cat.Insert(ctx, trashed); err != nil {
		t.Fatalf("insert trashed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened := testsupport.MustOpenCatalog(t, cfg)
	if reopened.Len() != 2 {
		t.Fatalf("reopened catalog has %d entries, want 2", reopened.Len())
	}
	if reopened.TrashCount() != 1 {
		t.Errorf("trash partition lost across reopen: %d trashed", reopened.TrashCount())
	}
	got, err := reopened.Get(trashed.ID)
	if err != nil {
		t.Fatalf("get trashed: %v", err)
	}
	if !got.Deleted() || *got.DeletedAt != 1700000000000 {
		t.Errorf("trash timestamp not persisted: %+v", got.DeletedAt)
	}
}
