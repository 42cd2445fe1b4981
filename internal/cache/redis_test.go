package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "test:"), mr
}

func TestRedisMissIsErrMiss(t *testing.T) {
	r, _ := newTestRedis(t)
	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisSetGetWithTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "regions:list", []byte(`[{"id":"reg_1"}]`), time.Minute, TagRegions))

	b, err := r.Get(ctx, "regions:list")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"reg_1"}]`, string(b))
	assert.Equal(t, time.Minute, mr.TTL("test:v:regions:list"))
	assert.Equal(t, 2*time.Minute, mr.TTL("test:t:regions"))

	members, err := mr.Members("test:t:regions")
	require.NoError(t, err)
	assert.Equal(t, []string{"test:v:regions:list"}, members)

	mr.FastForward(61 * time.Second)
	_, err = r.Get(ctx, "regions:list")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisSetWithoutTTLPersists(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "k", []byte("v"), 0, TagProducts))
	assert.Equal(t, time.Duration(0), mr.TTL("test:v:k"))
	assert.Equal(t, time.Duration(0), mr.TTL("test:t:products"))
}

func TestRedisInvalidateOnlyTagged(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Set(ctx, "cart", []byte("1"), time.Minute, CartTag("cart_1")))
	require.NoError(t, r.Set(ctx, "products", []byte("2"), time.Minute, TagProducts, TagRegions))

	require.NoError(t, r.InvalidateTags(ctx, CartTag("cart_1")))
	_, err := r.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrMiss)
	assert.False(t, mr.Exists("test:t:cart:cart_1"))
	_, err = r.Get(ctx, "products")
	assert.NoError(t, err)

	require.NoError(t, r.InvalidateTags(ctx, TagRegions))
	_, err = r.Get(ctx, "products")
	assert.ErrorIs(t, err, ErrMiss)

	// unknown tags are a no-op
	assert.NoError(t, r.InvalidateTags(ctx, "never-set"))
}

func TestRedisConnectionErrorIsNotMiss(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()

	_, err := r.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
	assert.Error(t, r.Ping(context.Background()))
}

func TestFetchThroughRedis(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)
	c := New(r, time.Minute, nil)

	loads := 0
	load := func(context.Context) ([]region, error) {
		loads++
		return []region{{ID: "reg_1", Name: "Europe"}}, nil
	}
	for i := 0; i < 2; i++ {
		got, err := Fetch(ctx, c, "regions:list", []string{TagRegions}, load)
		require.NoError(t, err)
		assert.Equal(t, "Europe", got[0].Name)
	}
	assert.Equal(t, 1, loads)

	c.Invalidate(ctx, TagRegions)
	_, err := Fetch(ctx, c, "regions:list", []string{TagRegions}, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}
