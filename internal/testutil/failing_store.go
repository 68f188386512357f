package testutil

import (
	"context"
	"sync"
)

type snapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// FailingSnapshotStore wraps a snapshot store and injects errors. Saves are
// counted starting at 1; FailSaveOn = 0 fails every save once SaveErr is set.
// Loads fail whenever LoadErr is set.
type FailingSnapshotStore struct {
	Inner      snapshotStore
	FailSaveOn int
	SaveErr    error
	LoadErr    error

	mu    sync.Mutex
	saves int
}

func (f *FailingSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.Inner.Load(ctx, key)
}

func (f *FailingSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	f.saves++
	n := f.saves
	f.mu.Unlock()

	if f.SaveErr != nil && (f.FailSaveOn == 0 || n == f.FailSaveOn) {
		return f.SaveErr
	}
	return f.Inner.Save(ctx, key, data)
}

// Saves returns how many Save calls reached the wrapper.
func (f *FailingSnapshotStore) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}
