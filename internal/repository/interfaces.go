package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by SnapshotStore.Load when nothing has been saved
// under the key yet.
var ErrNotFound = errors.New("not found")

// SnapshotStore persists one opaque snapshot per key. Save replaces the
// previous value in full.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
