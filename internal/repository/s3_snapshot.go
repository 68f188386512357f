package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3SnapshotStore keeps each snapshot as the object <prefix>/<key>.json in an
// S3-compatible bucket.
type S3SnapshotStore struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3SnapshotStore creates an S3-backed store. If endpoint is non-empty,
// path-style addressing is enabled (for MinIO and similar).
func NewS3SnapshotStore(ctx context.Context, bucket, prefix, region, endpoint string) (*S3SnapshotStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}
	return NewS3SnapshotStoreFromClient(s3.NewFromConfig(cfg, s3opts...), bucket, prefix), nil
}

// NewS3SnapshotStoreFromClient wraps an already configured client.
func NewS3SnapshotStoreFromClient(client *s3.Client, bucket, prefix string) *S3SnapshotStore {
	return &S3SnapshotStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3SnapshotStore) objectKey(key string) string {
	return path.Join(s.prefix, key+".json")
}

func (s *S3SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("s3 get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3 object: %w", err)
	}
	return data, nil
}

func (s *S3SnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}
