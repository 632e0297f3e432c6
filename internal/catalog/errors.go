package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an operation that referenced an id absent from the
	// collection (including ids that were already purged).
	ErrNotFound = errors.New("entry not found")

	// ErrConfirmationRequired marks a purge attempted without explicit
	// confirmation. Permanent deletion is unrecoverable and never silent.
	ErrConfirmationRequired = errors.New("permanent delete requires confirmation")
)

// LoadError reports a persisted cellar blob that could not be decoded. The
// catalog recovers by starting empty; the previous blob stays on disk until
// the next successful save overwrites it.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load cellar: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed persistence sync. The in-memory mutation that
// triggered the write remains applied.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("save cellar: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
