package repositories

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	objects map[string]string
	getErr  error
}

func (f *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3BlobStore(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{}}
	store := &s3BlobStore{client: bucket, bucket: "state", prefix: "tournaments/"}
	ctx := context.Background()

	_, err := store.Get(ctx, "main")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, store.Put(ctx, "main", []byte(`{"teams":[]}`)))
	assert.Contains(t, bucket.objects, "tournaments/main.json")

	got, err := store.Get(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, `{"teams":[]}`, string(got))

	bucket.getErr = errors.New("network down")
	_, err = store.Get(ctx, "main")
	assert.ErrorContains(t, err, "network down")
	assert.NotErrorIs(t, err, ErrBlobNotFound)
}
