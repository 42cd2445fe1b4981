package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFetchCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(), time.Minute, nil)

	var loads atomic.Int32
	load := func(context.Context) ([]region, error) {
		loads.Add(1)
		return []region{{ID: "reg_1", Name: "Europe"}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, c, "regions:list", []string{TagRegions}, load)
		require.NoError(t, err)
		assert.Equal(t, "Europe", got[0].Name)
	}
	assert.Equal(t, int32(1), loads.Load())

	c.Invalidate(ctx, TagRegions)
	_, err := Fetch(ctx, c, "regions:list", []string{TagRegions}, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(), time.Minute, nil)
	boom := errors.New("backend down")

	_, err := Fetch(ctx, c, "k", nil, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := Fetch(ctx, c, "k", nil, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFetchCollapsesConcurrentLoads(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(), time.Minute, nil)

	release := make(chan struct{})
	var loads atomic.Int32
	load := func(context.Context) (string, error) {
		loads.Add(1)
		<-release
		return "ok", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(ctx, c, "same", nil, load)
			assert.NoError(t, err)
			assert.Equal(t, "ok", v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, loads.Load(), int32(8))
	assert.GreaterOrEqual(t, loads.Load(), int32(1))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("conn refused")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration, ...string) error {
	return errors.New("conn refused")
}
func (failingStore) InvalidateTags(context.Context, ...string) error {
	return errors.New("conn refused")
}

func TestStoreFailureFallsThrough(t *testing.T) {
	c := New(failingStore{}, time.Minute, nil)
	v, err := Fetch(context.Background(), c, "k", nil, func(context.Context) (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	c.Invalidate(context.Background(), "any")
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Second, "t1"))
	b, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), b)

	now = now.Add(2 * time.Second)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryInvalidateOnlyTagged(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "cart", []byte("1"), 0, CartTag("cart_1")))
	require.NoError(t, m.Set(ctx, "products", []byte("2"), 0, TagProducts, TagRegions))

	require.NoError(t, m.InvalidateTags(ctx, CartTag("cart_1")))
	_, err := m.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = m.Get(ctx, "products")
	assert.NoError(t, err)

	require.NoError(t, m.InvalidateTags(ctx, TagRegions))
	_, err = m.Get(ctx, "products")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestInvalidateDuringLoadSkipsStaleWrite(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(), time.Minute, nil)
	tags := []string{CartTag("1")}

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string, 1)
	go func() {
		v, _ := Fetch(ctx, c, "cart:1", tags, func(context.Context) (string, error) {
			close(started)
			<-release
			return "before-mutation", nil
		})
		done <- v
	}()

	<-started
	c.Invalidate(ctx, CartTag("1"))
	close(release)
	assert.Equal(t, "before-mutation", <-done)

	v, err := Fetch(ctx, c, "cart:1", tags, func(context.Context) (string, error) { return "after-mutation", nil })
	require.NoError(t, err)
	assert.Equal(t, "after-mutation", v)
}

func TestUnrelatedInvalidationKeepsLoadedValue(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(), time.Minute, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Fetch(ctx, c, "regions:list", []string{TagRegions}, func(context.Context) (string, error) {
			close(started)
			<-release
			return "europe", nil
		})
	}()

	<-started
	c.Invalidate(ctx, CartTag("1"))
	close(release)
	<-done

	v, err := Fetch(ctx, c, "regions:list", []string{TagRegions}, func(context.Context) (string, error) { return "reloaded", nil })
	require.NoError(t, err)
	assert.Equal(t, "europe", v)
}

func TestCancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	c := New(NewMemory(), time.Minute, nil)

	var once sync.Once
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (string, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
			return "regions", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := Fetch(leaderCtx, c, "regions:list", nil, load)
		leaderErr <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	follower := make(chan result, 1)
	go func() {
		v, err := Fetch(context.Background(), c, "regions:list", nil, load)
		follower <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	r := <-follower
	require.NoError(t, r.err)
	assert.Equal(t, "regions", r.v)
}

func TestMemorySweepDropsExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryWithLimit(0)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for i := 0; i < 500; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("products:page:%d", i), []byte("x"), time.Minute, TagProducts))
	}
	require.NoError(t, m.Set(ctx, "regions:list", []byte("x"), 0, TagRegions))

	now = now.Add(time.Hour)
	assert.Equal(t, 500, m.Sweep())
	assert.Equal(t, 1, m.Len())

	m.mu.Lock()
	_, tagged := m.byTag[TagProducts]
	m.mu.Unlock()
	assert.False(t, tagged)
}

func TestMemoryCapsEntries(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryWithLimit(20)

	for i := 0; i < 100; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("k%d", i), []byte("x"), time.Minute))
	}
	assert.LessOrEqual(t, m.Len(), 20)

	b, err := m.Get(ctx, "k99")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), b)
}

func TestMemoryRunStopsWithContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
