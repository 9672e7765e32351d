package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when a slot has never been written or was
// cleared.
var ErrNotFound = errors.New("slot not found")

// Store is a key-value store of opaque slot payloads with last-write-wins
// semantics.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	// Clear removes the slot; clearing a missing slot is not an error.
	Clear(ctx context.Context, key string) error
	Close() error
}
