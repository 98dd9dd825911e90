// Package store persists the named study documents. Implementations keep a
// single-generation backup of the previous content next to each document so a
// bad write never loses the last good state.
package store

import (
	"context"
	"errors"
	"fmt"
)

// BackupSuffix is appended to a document name to form its backup artifact.
const BackupSuffix = ".backup"

// ErrNotFound signals that the named document does not exist.
var ErrNotFound = errors.New("document not found")

// PersistError reports a failed backup or write phase of Replace. The
// previous content remains loadable (directly or via the backup).
type PersistError struct {
	Name  string
	Phase string // "backup" or "write"
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s (%s phase): %v", e.Name, e.Phase, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// IsPersistError checks if an error is a *PersistError.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}

// Store owns the raw bytes of the named documents. Callers get independent
// copies; all mutation goes through Replace.
type Store interface {
	// Load returns the current content of the named document, or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)

	// Exists reports whether the named document is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Replace durably swaps the document content in two phases: copy the
	// prior content to name+BackupSuffix, then write the new bytes. Replace
	// calls for the same name are serialized; last write wins.
	Replace(ctx context.Context, name string, data []byte) error
}
