package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	put     *s3.PutObjectInput
	body    string
	deleted string
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploaderUploadAndDelete(t *testing.T) {
	objects := &fakeObjects{}
	u := &cloudflareR2Uploader{client: objects, bucketName: "exports", publicBaseURL: "https://cdn.example.com/media"}

	res, err := u.Upload(context.Background(), "exports/a.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "exports/a.png", res.Key)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/media/exports/a.png", res.Location)
	assert.Equal(t, "exports", aws.ToString(objects.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(objects.put.ContentType))
	assert.Equal(t, "png-bytes", objects.body)

	require.NoError(t, u.Delete(context.Background(), "exports/a.png"))
	assert.Equal(t, "exports/a.png", objects.deleted)
}

func TestUploaderWrapsErrors(t *testing.T) {
	u := &cloudflareR2Uploader{client: &fakeObjects{err: errors.New("boom")}, bucketName: "b", publicBaseURL: "https://x"}
	_, err := u.Upload(context.Background(), "k", "image/png", strings.NewReader(""))
	assert.ErrorContains(t, err, "boom")
	assert.ErrorContains(t, u.Delete(context.Background(), "k"), "boom")
}

func TestJoinPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/k.png", joinPublicURL("https://cdn.example.com", "k.png"))
	assert.Equal(t, "https://cdn.example.com/base/k.png", joinPublicURL("https://cdn.example.com/base/", "/k.png"))
	assert.Empty(t, joinPublicURL("", "k.png"))
	assert.Empty(t, joinPublicURL("https://cdn.example.com", ""))
}

func TestGetExtensionFromContentType(t *testing.T) {
	for ct, want := range map[string]string{
		"image/png":     ".png",
		"image/jpeg":    ".jpg",
		"image/svg+xml": ".svg",
		"image/avif":    ".avif",
	} {
		got, err := GetExtensionFromContentType(ct)
		require.NoError(t, err, ct)
		assert.Equal(t, want, got)
	}
	_, err := GetExtensionFromContentType("application/pdf")
	assert.Error(t, err)
}

func TestNewR2ClientRequiresConfig(t *testing.T) {
	_, err := NewR2Client(context.Background(), R2Config{AccountID: "acc"})
	assert.ErrorIs(t, err, ErrR2NotConfigured)
}
