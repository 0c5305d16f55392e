// Package snapshot persists the full ledger document as an opaque blob under
// a fixed storage key. The ledger owns the schema; stores only move bytes.
package snapshot

import "context"

// Key is the fixed storage identifier for the ledger document. Bumping it
// invalidates all prior saves, which is the accepted migration strategy.
const Key = "imperium-hoja-registro-v2"

// ErrNotFound is returned by Load when no snapshot has been saved yet.
type ErrNotFound struct{}

func (ErrNotFound) Error() string { return "snapshot not found" }

// Store is a durable home for the serialized ledger document.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Ping(ctx context.Context) error
}
