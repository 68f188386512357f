package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSSnapshotStore keeps snapshots in a JetStream key-value bucket. The
// bucket is created on first use.
type NATSSnapshotStore struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

func NewNATSSnapshotStore(url, bucket string) (*NATSSnapshotStore, error) {
	nc, err := nats.Connect(url, nats.MaxReconnects(-1), nats.ReconnectWait(time.Second))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("opening JetStream: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket})
	}
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("binding key-value bucket %s: %w", bucket, err)
	}
	return &NATSSnapshotStore{conn: nc, kv: kv}, nil
}

func (s *NATSSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(key)
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", key, err)
	}
	return entry.Value(), nil
}

func (s *NATSSnapshotStore) Save(_ context.Context, key string, data []byte) error {
	if _, err := s.kv.Put(key, data); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	return nil
}

func (s *NATSSnapshotStore) Close() error {
	s.conn.Close()
	return nil
}
