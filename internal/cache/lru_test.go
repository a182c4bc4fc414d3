package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache[T any](size int, ttl time.Duration) (*LRUCache[T], *fakeClock) {
	clock := &fakeClock{t: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[T](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUCacheEviction(t *testing.T) {
	c, _ := newTestCache[string](3, time.Hour)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")
	c.Set("key4", "value4") // evicts key1

	_, found := c.Get("key1")
	assert.False(t, found, "key1 should have been evicted")
	for _, k := range []string{"key2", "key3", "key4"} {
		_, found := c.Get(k)
		assert.True(t, found, "%s should still exist", k)
	}
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestLRUCacheRecentUseSurvivesEviction(t *testing.T) {
	c, _ := newTestCache[int](2, time.Hour)

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3) // evicts b

	_, found := c.Get("b")
	assert.False(t, found)
	v, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, 1, v)
}

func TestLRUCacheTTLExpiration(t *testing.T) {
	c, clock := newTestCache[string](100, 50*time.Millisecond)

	c.Set("key1", "value1")
	_, found := c.Get("key1")
	assert.True(t, found, "key1 should exist immediately")

	clock.advance(60 * time.Millisecond)

	_, found = c.Get("key1")
	assert.False(t, found, "key1 should have expired")
	assert.Equal(t, 0, c.Size())
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c, clock := newTestCache[string](100, 50*time.Millisecond)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	clock.advance(30 * time.Millisecond)
	c.Set("key3", "value3")
	clock.advance(30 * time.Millisecond)

	assert.Equal(t, 2, c.CleanExpired())
	assert.Equal(t, 1, c.Size())
}

func TestLRUCacheGetOrCompute(t *testing.T) {
	c, _ := newTestCache[[]int](10, time.Minute)
	calls := 0
	compute := func() []int {
		calls++
		return []int{1, 2, 3}
	}

	v, hit := c.GetOrCompute("q", compute)
	assert.False(t, hit)
	assert.Equal(t, []int{1, 2, 3}, v)

	v, hit = c.GetOrCompute("q", compute)
	assert.True(t, hit)
	assert.Equal(t, []int{1, 2, 3}, v)
	assert.Equal(t, 1, calls)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
}

func TestLRUCachePurge(t *testing.T) {
	c, _ := newTestCache[int](10, time.Minute)
	for i := range 5 {
		c.Set(fmt.Sprint(i), i)
	}
	c.Purge()
	assert.Equal(t, 0, c.Size())
	c.Set("x", 1)
	assert.Equal(t, 1, c.Size())
}

func TestManagerCleanNowAndStop(t *testing.T) {
	c, clock := newTestCache[int](10, time.Second)
	c.Set("a", 1)
	c.Set("b", 2)
	clock.advance(2 * time.Second)

	m := NewManager(nil)
	m.Register("views", c)
	assert.Equal(t, 2, m.CleanNow())

	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}

func TestManagerStopWithoutStart(t *testing.T) {
	m := NewManager(nil)
	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without a running cleanup")
	}
}

func BenchmarkLRUCache(b *testing.B) {
	c := NewLRUCache[[]string](1000, time.Hour)
	rows := []string{"Grocery Shopping", "Salary Deposit"}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		key := "bench-key"
		if i%10 == 0 {
			c.Set(key, rows)
		} else {
			c.Get(key)
		}
	}
}
