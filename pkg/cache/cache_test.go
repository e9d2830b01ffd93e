package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
)

func TestMain(m *testing.M) {
	retryDelay = time.Millisecond
	os.Exit(m.Run())
}

// exercise runs the behaviour every backend shares.
func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "check:a")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "check:a", []byte("planar"), 0))
	data, hit, err := c.Get(ctx, "check:a")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("planar"), data)

	require.NoError(t, c.Set(ctx, "check:a", []byte("non-planar"), time.Hour))
	data, _, err = c.Get(ctx, "check:a")
	require.NoError(t, err)
	assert.Equal(t, []byte("non-planar"), data)

	require.NoError(t, c.Delete(ctx, "check:a"))
	require.NoError(t, c.Delete(ctx, "check:a"))
	_, hit, err = c.Get(ctx, "check:a")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "embed:b", []byte("x"), 0))
	require.NoError(t, c.Set(ctx, "embed:c", []byte("y"), 0))
	require.NoError(t, c.(Clearer).Clear(ctx))
	for _, k := range []string{"embed:b", "embed:c"} {
		_, hit, err = c.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, hit, k)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	defer c.Close()
	exercise(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(time.Millisecond)
	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
	_, err = os.Stat(c.path("k"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expired entry should be removed")
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	path := c.path("k")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBadgerCache(t *testing.T) {
	c, err := NewBadgerCache(BadgerOptions{InMemory: true})
	require.NoError(t, err)
	defer c.Close()
	exercise(t, c)
}

func TestBadgerCacheOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewBadgerCache(BadgerOptions{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, c.Close())

	c, err = NewBadgerCache(BadgerOptions{Dir: dir})
	require.NoError(t, err)
	defer c.Close()
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("v"), data)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("PLANARITY_TEST_REDIS")
	if addr == "" {
		t.Skip("PLANARITY_TEST_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: addr, Prefix: "planarity-test:"})
	require.NoError(t, err)
	defer c.Close()
	exercise(t, c)
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

type countingHooks struct {
	hits, misses, sets map[string]int
	bytes              int
}

func newCountingHooks() *countingHooks {
	return &countingHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
}

func (h *countingHooks) OnCacheHit(_ context.Context, k string)  { h.hits[k]++ }
func (h *countingHooks) OnCacheMiss(_ context.Context, k string) { h.misses[k]++ }
func (h *countingHooks) OnCacheSet(_ context.Context, k string, n int) {
	h.sets[k]++
	h.bytes += n
}

func TestInstrumented(t *testing.T) {
	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	hooks := newCountingHooks()
	c := Instrument(fc, hooks)

	_, _, err = c.Get(ctx, "planarize:abc")
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "planarize:abc", []byte("12345"), 0))
	_, _, err = c.Get(ctx, "planarize:abc")
	require.NoError(t, err)
	_, _, err = c.Get(ctx, "nocolon")
	require.NoError(t, err)

	assert.Equal(t, 1, hooks.misses["planarize"])
	assert.Equal(t, 1, hooks.hits["planarize"])
	assert.Equal(t, 1, hooks.sets["planarize"])
	assert.Equal(t, 5, hooks.bytes)
	assert.Equal(t, 1, hooks.misses["other"])

	require.NoError(t, c.Clear(ctx))
	_, hit, err := c.Get(ctx, "planarize:abc")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := Open(ctx, Config{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &NullCache{}, c.Cache)

	c, err = Open(ctx, Config{Backend: BackendFile, Dir: dir}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileCache{}, c.Cache)

	c, err = Open(ctx, Config{Backend: BackendBadger, Dir: filepath.Join(dir, "badger")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &BadgerCache{}, c.Cache)
	require.NoError(t, c.Close())

	for _, cfg := range []Config{
		{Backend: "memcached"},
		{Backend: BackendFile},
		{Backend: BackendRedis},
		{Backend: BackendBadger},
	} {
		_, err := Open(ctx, cfg, nil)
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput), "%+v: %v", cfg, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	assert.Equal(t, h1, Hash([]byte("hello")))
	assert.NotEqual(t, h1, Hash([]byte("world")))
	assert.Len(t, h1, 64)
}

func triangle(t *testing.T, labels ...int64) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, l := range labels {
		_, err := g.AddNode(l)
		require.NoError(t, err)
	}
	for i := range labels {
		_, err := g.AddEdgeByLabel(labels[i], labels[(i+1)%len(labels)])
		require.NoError(t, err)
	}
	return g
}

func TestGraphHash(t *testing.T) {
	g := triangle(t, 1, 2, 3)
	h := GraphHash(g)
	assert.Len(t, h, 64)
	assert.Equal(t, h, GraphHash(triangle(t, 1, 2, 3)))
	assert.NotEqual(t, h, GraphHash(triangle(t, 1, 2, 4)))

	n, _ := g.NodeByLabel(1)
	inc := g.Incident(n)
	require.NoError(t, g.SetRotation(n, []graph.EdgeID{inc[1], inc[0]}))
	assert.Equal(t, h, GraphHash(g), "rotation must not change the hash")
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	bl := k.ResultKey(OpCheck, "abc", ResultKeyOpts{Algorithm: "bl"})
	jts := k.ResultKey(OpCheck, "abc", ResultKeyOpts{Algorithm: "jts"})
	assert.NotEqual(t, bl, jts)
	assert.Equal(t, "check:", bl[:6])
	assert.NotEqual(t, bl, k.ResultKey(OpEmbed, "abc", ResultKeyOpts{Algorithm: "bl"}))
	assert.NotEqual(t, bl, k.ResultKey(OpCheck, "abc", ResultKeyOpts{Algorithm: "bl", ST: []int64{1, 2}}))
	assert.NotEqual(t,
		k.ResultKey(OpPlanarize, "abc", ResultKeyOpts{}),
		k.ResultKey(OpPlanarize, "abc", ResultKeyOpts{VirtualStart: 100}))
	assert.Equal(t, "report:42", k.ReportKey("42"))
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "staging:")
	assert.Equal(t, "staging:report:1", scoped.ReportKey("1"))
	key := scoped.ResultKey(OpCheck, "abc", ResultKeyOpts{})
	assert.Equal(t, "staging:"+NewDefaultKeyer().ResultKey(OpCheck, "abc", ResultKeyOpts{}), key)
}

func TestRetryableError(t *testing.T) {
	assert.Nil(t, Retryable(nil))

	err := Retryable(ErrNetwork)
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, ErrNetwork.Error(), err.Error())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	require.NoError(t, RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)

	final := errors.New("final")
	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return final
	})
	assert.Equal(t, final, err)
	assert.Equal(t, 1, calls)

	calls = 0
	require.NoError(t, RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	}))
	assert.Equal(t, 2, calls)

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	assert.Equal(t, context.Canceled, err)
}
