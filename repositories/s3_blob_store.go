package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3ObjectAPI is the subset of *s3.Client the blob store calls.
type s3ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3BlobStore struct {
	client s3ObjectAPI
	bucket string
	prefix string
}

// NewS3BlobStore keeps each blob as "<prefix><key>.json" in the bucket. Works
// against R2 through storage.NewR2Client.
func NewS3BlobStore(client *s3.Client, bucket, prefix string) BlobStore {
	return &s3BlobStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *s3BlobStore) objectKey(key string) string {
	return s.prefix + key + ".json"
}

func (s *s3BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read state object %q: %w", s.objectKey(key), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read state object body: %w", err)
	}
	return data, nil
}

func (s *s3BlobStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to write state object %q: %w", s.objectKey(key), err)
	}
	return nil
}
