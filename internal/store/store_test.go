package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(start time.Time) *manualClock {
	return &manualClock{now: start}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryCache_Expiry(t *testing.T) {
	clock := newManualClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	cache := NewMemoryCache(time.Minute, WithClock(clock.Now))

	require.NoError(t, cache.Set(ctx, "k", "v"))
	got, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	clock.Advance(59 * time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok, "entry expires at the TTL")
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_NoTTL(t *testing.T) {
	clock := newManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	cache := NewMemoryCache(0, WithClock(clock.Now))
	require.NoError(t, cache.Set(ctx, "k", "v"))

	clock.Advance(24 * 365 * time.Hour)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	_, ok = cache.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryCache_SweepDropsUnreadExpiredEntries(t *testing.T) {
	clock := newManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	cache := NewMemoryCache(time.Millisecond, WithClock(clock.Now), WithMaxEntries(0))

	for i := 0; i < 1000; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("old-%d", i), "v"))
	}
	clock.Advance(10 * time.Millisecond)
	for i := 0; i < 1000; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("new-%d", i), "v"))
	}
	require.Equal(t, 2000, cache.Len())

	assert.Equal(t, 1000, cache.Sweep())
	assert.Equal(t, 1000, cache.Len())
	_, ok := cache.Get(ctx, "new-0")
	assert.True(t, ok)
}

func TestMemoryCache_FullCacheDropsExpiredOnSet(t *testing.T) {
	clock := newManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	cache := NewMemoryCache(time.Minute, WithClock(clock.Now), WithMaxEntries(100))

	for i := 0; i < 100; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("old-%d", i), "v"))
	}
	clock.Advance(time.Hour)
	require.NoError(t, cache.Set(ctx, "fresh", "v"))

	assert.Equal(t, 1, cache.Len(), "expired entries are removed without being read")
}

func TestMemoryCache_MaxEntries(t *testing.T) {
	clock := newManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour, WithClock(clock.Now), WithMaxEntries(3))

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, key, key))
		clock.Advance(time.Second)
	}
	require.NoError(t, cache.Set(ctx, "b", "b2"))
	assert.Equal(t, 3, cache.Len(), "overwriting a key never evicts")

	require.NoError(t, cache.Set(ctx, "d", "d"))
	assert.Equal(t, 3, cache.Len())
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok, "the entry closest to expiry is evicted")
	got, ok := cache.Get(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, "b2", got)
}

func TestMemoryCache_Sweeper(t *testing.T) {
	clock := newManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	cache := NewMemoryCache(time.Minute, WithClock(clock.Now))
	require.NoError(t, cache.Set(context.Background(), "k", "v"))
	clock.Advance(time.Hour)

	cache.StartSweeper(time.Millisecond)
	defer cache.Close()
	assert.Eventually(t, func() bool { return cache.Len() == 0 }, time.Second, 5*time.Millisecond)

	cache.Close()
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			_ = cache.Set(ctx, key, "v")
			cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, cache.Len())
}

func TestNopCache(t *testing.T) {
	var cache Cache = NopCache{}
	require.NoError(t, cache.Set(context.Background(), "k", "v"))
	_, ok := cache.Get(context.Background(), "k")
	assert.False(t, ok)
}

func snapshotAt(id string, at time.Time, netWorth int64) domain.NetWorthSnapshot {
	return domain.NetWorthSnapshot{
		ID:        id,
		CreatedAt: at,
		Input: domain.NetWorthInput{
			Assets: map[string]float64{"cash_savings": float64(netWorth)},
		},
		NetWorth:         decimal.NewFromInt(netWorth),
		TotalAssets:      decimal.NewFromInt(netWorth),
		TotalLiabilities: decimal.Zero,
	}
}

// snapshotRepositoryContract runs the behaviour every SnapshotRepository must share.
func snapshotRepositoryContract(t *testing.T, repo SnapshotRepository) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, snapshotAt("a", base, 100)))
	require.NoError(t, repo.Save(ctx, snapshotAt("b", base.Add(time.Hour), 200)))
	require.NoError(t, repo.Save(ctx, snapshotAt("c", base.Add(2*time.Hour), 300)))

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})

	list, err = repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, got.NetWorth.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 200.0, got.Input.Assets["cash_savings"])
	assert.True(t, got.CreatedAt.Equal(base.Add(time.Hour)))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemorySnapshots(t *testing.T) {
	snapshotRepositoryContract(t, NewMemorySnapshots())
}
