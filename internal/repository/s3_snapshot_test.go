package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves path-style GetObject and PutObject from a map.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3Store(t *testing.T) (*S3SnapshotStore, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: make(map[string][]byte)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:                     "eu-central-1",
		BaseEndpoint:               aws.String(srv.URL),
		UsePathStyle:               true,
		Credentials:                aws.AnonymousCredentials{},
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
	return NewS3SnapshotStoreFromClient(client, "pensions", "backups"), fake
}

func TestS3SnapshotStore_LoadMissing(t *testing.T) {
	store, _ := newTestS3Store(t)

	_, err := store.Load(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3SnapshotStore_SaveThenLoad(t *testing.T) {
	store, fake := newTestS3Store(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testKey, []byte(`[{"year":2021}]`)))
	assert.Contains(t, fake.objects, "/pensions/backups/pension-data.json")

	got, err := store.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"year":2021}]`, string(got))
}
