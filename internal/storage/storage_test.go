package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
)

func TestLocal_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/static/uploads/")

	res, err := l.Put(context.Background(), strings.NewReader("<svg/>"), PutInput{Key: "brand/logo.svg"})
	require.NoError(t, err)
	assert.Equal(t, "brand/logo.svg", res.Key)
	assert.Equal(t, "/static/uploads/brand/logo.svg", res.URL)

	b, err := os.ReadFile(filepath.Join(dir, "brand", "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(b))

	require.NoError(t, l.Delete(context.Background(), "brand/logo.svg"))
	_, err = os.Stat(filepath.Join(dir, "brand", "logo.svg"))
	assert.True(t, os.IsNotExist(err))

	// deleting a missing object is not an error
	assert.NoError(t, l.Delete(context.Background(), "brand/logo.svg"))
}

func TestLocal_GeneratedKeyAndTraversal(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/u")

	res, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Filename: "Hero.JPG"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Key, ".jpg"))
	assert.NotContains(t, res.Key, "/")

	res, err = l.Put(context.Background(), strings.NewReader("x"), PutInput{Key: "../../etc/passwd"})
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", res.Key)
	_, err = os.Stat(filepath.Join(dir, "etc", "passwd"))
	assert.NoError(t, err)
}

func TestURL_AbsolutePassthrough(t *testing.T) {
	l := NewLocal("", "/u")
	assert.Equal(t, "https://cdn.example.com/a.png", l.URL("https://cdn.example.com/a.png"))
	assert.Equal(t, "/u/a.png", l.URL("a.png"))
}

type fakeObjects struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	_, _ = io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_Put(t *testing.T) {
	fake := &fakeObjects{}
	s := NewS3WithClient(fake, S3Config{
		Region: "eu-west-1", Bucket: "shop", Prefix: "/assets/",
		PublicACL: true, CacheMaxAge: 3600,
	})

	res, err := s.Put(context.Background(), strings.NewReader("png"), PutInput{Key: "hero/1.png", ContentType: "image/png", Size: 3})
	require.NoError(t, err)
	assert.Equal(t, "hero/1.png", res.Key)
	assert.Equal(t, "https://shop.s3.eu-west-1.amazonaws.com/assets/hero/1.png", res.URL)

	require.Len(t, fake.puts, 1)
	in := fake.puts[0]
	assert.Equal(t, "shop", aws.ToString(in.Bucket))
	assert.Equal(t, "assets/hero/1.png", aws.ToString(in.Key))
	assert.Equal(t, "image/png", aws.ToString(in.ContentType))
	assert.Equal(t, "public, max-age=3600", aws.ToString(in.CacheControl))
	assert.Equal(t, types.ObjectCannedACLPublicRead, in.ACL)
	assert.Equal(t, int64(3), aws.ToInt64(in.ContentLength))
}

func TestS3_DeleteAndURL(t *testing.T) {
	fake := &fakeObjects{}
	s := NewS3WithClient(fake, S3Config{Bucket: "shop", PublicBaseURL: "https://cdn.example.com/"})

	require.NoError(t, s.Delete(context.Background(), "logo.svg"))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "logo.svg", aws.ToString(fake.deletes[0].Key))
	assert.Equal(t, "https://cdn.example.com/logo.svg", s.URL("logo.svg"))
}

func TestFromConfig(t *testing.T) {
	st, err := FromConfig(context.Background(), config.StorageConfig{Driver: "local", LocalDir: t.TempDir(), LocalURL: "/s"})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, st)

	_, err = FromConfig(context.Background(), config.StorageConfig{Driver: "s3"})
	require.Error(t, err)

	_, err = FromConfig(context.Background(), config.StorageConfig{Driver: "ftp"})
	require.Error(t, err)
}
