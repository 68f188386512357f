package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/repository"
	"github.com/alexanderramin/pensionbook/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}

// newTestService returns a service over an in-memory snapshot store wrapped
// so tests can count writes and inject failures.
func newTestService(t *testing.T, observers ...UseCaseObserver) (PensionService, *testutil.FailingSnapshotStore) {
	t.Helper()
	store := &testutil.FailingSnapshotStore{Inner: repository.NewMemorySnapshotStore()}
	return NewPensionService(store, nil, observers...), store
}

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func mustAdd(t *testing.T, svc PensionService, fields domain.RecordFields) domain.PensionRecord {
	t.Helper()
	r, err := svc.Add(context.Background(), fields)
	require.NoError(t, err)
	return r
}

func years(records []domain.PensionRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Year
	}
	return out
}
