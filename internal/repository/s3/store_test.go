package s3_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	s3store "github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/s3"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/repotest"
)

// fakeBucket эмулирует один бакет S3 в памяти
type fakeBucket struct {
	mu      sync.Mutex
	name    string
	objects map[string][]byte
	puts    int
}

func newFakeBucket(name string) *fakeBucket {
	return &fakeBucket{name: name, objects: make(map[string][]byte)}
}

func (b *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (b *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[aws.ToString(in.Key)] = data
	b.puts++
	return &s3.PutObjectOutput{}, nil
}

func (b *fakeBucket) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (b *fakeBucket) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var keys []string
	for key := range b.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, key := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	return out, nil
}

func (b *fakeBucket) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if aws.ToString(in.Bucket) != b.name {
		return nil, &types.NotFound{Message: aws.String("no bucket")}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (b *fakeBucket) putCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.puts
}

func (b *fakeBucket) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func TestStore(t *testing.T) {
	store := s3store.NewWithClient(newFakeBucket("dashboard"), "dashboard", "")
	require.NoError(t, store.Migrate(context.Background()))

	repotest.RunStore(t, store)
}

func TestStore_ObjectLayout(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket("dashboard")
	store := s3store.NewWithClient(bucket, "dashboard", "/intranet/")

	card := &domain.Card{ID: "card1", Title: "HR"}
	require.NoError(t, store.Cards().Create(ctx, card))
	unit := &domain.Unit{ID: "unit1", Name: "Eng"}
	require.NoError(t, store.Units().Create(ctx, unit))

	assert.Equal(t, []string{"intranet/cards/card1.json", "intranet/units/unit1.json"}, bucket.keys())
}

func TestStore_PullUnknownEntrySkipsWrite(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket("dashboard")
	units := s3store.NewWithClient(bucket, "dashboard", "").Units()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	unit := &domain.Unit{ID: "unit1", Name: "Eng", CreatedAt: created, UpdatedAt: created}
	require.NoError(t, units.Create(ctx, unit))
	puts := bucket.putCount()

	got, err := units.PullEntry(ctx, unit.ID, domain.ListSites, "nope", created.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(created))
	assert.Equal(t, puts, bucket.putCount())
}

func TestStore_PingMissingBucket(t *testing.T) {
	store := s3store.NewWithClient(newFakeBucket("dashboard"), "other", "")

	err := store.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket other does not exist")
}
