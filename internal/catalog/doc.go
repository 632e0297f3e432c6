// Package catalog owns the authoritative in-memory wine collection and its
// synchronization with durable storage.
//
// Every mutation (insert, update, soft delete, restore, purge, import)
// serializes the full collection and writes it through the storage boundary.
// A failed write surfaces as a typed WriteError but never rolls back the
// in-memory mutation; a corrupt persisted blob surfaces as a typed LoadError
// and the catalog starts empty instead of failing to open.
//
// Soft deletion is a single timestamp field: entries with DeletedAt set form
// the trash partition, everything else is active. Permanent deletion requires
// an explicit confirmation flag and is the only operation that removes a
// record from the collection.
//
// Treat this package as the single source of truth for entry lifecycle
// semantics; the query package derives views from Entries() snapshots and
// never mutates catalog state.
package catalog
