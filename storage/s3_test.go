package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects       map[string][]byte
	bucketExists  bool
	createdBucket string
	headErr       error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if !f.bucketExists {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.createdBucket = aws.ToString(in.Bucket)
	f.bucketExists = true
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3BackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	b := &S3Backend{client: fake, bucket: "photos", region: "eu-west-1"}

	require.NoError(t, b.EnsureRoot(ctx))
	assert.Equal(t, "photos", fake.createdBucket)

	require.NoError(t, b.Put(ctx, "k.png", bytes.NewReader([]byte("png")), 3, "image/png"))
	rc, err := b.Open(ctx, "k.png")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "png", string(data))

	require.NoError(t, b.Delete(ctx, "k.png"))
	assert.ErrorIs(t, b.Delete(ctx, "k.png"), ErrObjectNotFound)

	_, err = b.Open(ctx, "k.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3BackendDeletePropagatesIOErrors(t *testing.T) {
	fake := newFakeS3()
	fake.headErr = errors.New("connection reset")
	b := &S3Backend{client: fake, bucket: "photos"}

	err := b.Delete(context.Background(), "k.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrObjectNotFound)
}

func TestS3BackendEnsureRootExistingBucket(t *testing.T) {
	fake := newFakeS3()
	fake.bucketExists = true
	b := &S3Backend{client: fake, bucket: "photos"}

	require.NoError(t, b.EnsureRoot(context.Background()))
	assert.Empty(t, fake.createdBucket)
}
