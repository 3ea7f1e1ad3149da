package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-archiver/internal/logging"
)

type fakeUploader struct {
	input *s3manager.UploadInput
	body  []byte
	err   error
}

func (f *fakeUploader) Upload(input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return f.UploadWithContext(context.Background(), input, opts...)
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.input = input
	if input.Body != nil {
		f.body, _ = io.ReadAll(input.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3manager.UploadOutput{
		Location: "https://" + aws.StringValue(input.Bucket) + ".s3.amazonaws.com/" + aws.StringValue(input.Key),
	}, nil
}

func TestS3Config_Enabled(t *testing.T) {
	assert.False(t, S3Config{}.Enabled())
	assert.False(t, S3Config{Bucket: "  "}.Enabled())
	assert.True(t, S3Config{Bucket: "archives"}.Enabled())
}

func TestNewS3Publisher_NoBucket(t *testing.T) {
	_, err := NewS3Publisher(S3Config{Region: "eu-west-1"}, logging.Discard())
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix   string
		expected string
	}{
		{"", "mix.zip"},
		{"yt", "yt/mix.zip"},
		{"/yt/2026/", "yt/2026/mix.zip"},
	}

	for _, tt := range tests {
		p := NewS3PublisherWithUploader(&fakeUploader{}, S3Config{Bucket: "b", Prefix: tt.prefix}, nil)
		if got := p.Key("/home/user/Downloads/mix.zip"); got != tt.expected {
			t.Errorf("Key() with prefix %q = %q, expected %q", tt.prefix, got, tt.expected)
		}
	}
}

func TestPublish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK zip"), 0644))

	uploader := &fakeUploader{}
	p := NewS3PublisherWithUploader(uploader, S3Config{Bucket: "archives", Prefix: "yt"}, logging.Discard())

	location, err := p.Publish(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "https://archives.s3.amazonaws.com/yt/mix.zip", location)
	assert.Equal(t, "archives", aws.StringValue(uploader.input.Bucket))
	assert.Equal(t, "yt/mix.zip", aws.StringValue(uploader.input.Key))
	assert.Equal(t, ContentTypeZip, aws.StringValue(uploader.input.ContentType))
	assert.Equal(t, "PK zip", string(uploader.body))
}

func TestPublish_Errors(t *testing.T) {
	p := NewS3PublisherWithUploader(&fakeUploader{}, S3Config{Bucket: "b"}, nil)
	_, err := p.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.zip"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "a.zip")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	boom := errors.New("access denied")
	p = NewS3PublisherWithUploader(&fakeUploader{err: boom}, S3Config{Bucket: "b"}, nil)
	_, err = p.Publish(context.Background(), path)
	assert.ErrorIs(t, err, boom)
}
