package menu

import (
	"MenuGacha/models"
	"MenuGacha/services/gacha"
	"MenuGacha/services/redis"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	records []models.MenuItem
	err     error
	calls   int
}

func (s *countingSource) Name() string { return "test" }

func (s *countingSource) Records(ctx context.Context) ([]models.MenuItem, error) {
	s.calls++
	return s.records, s.err
}

func testRecords() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Name: "A", Price: 200, Category: "X"},
		{ID: 2, Name: "B", Price: 300, Category: "Y"},
	}
}

func TestProviderMemoizes(t *testing.T) {
	source := &countingSource{records: testRecords()}
	provider := NewProvider(source, []string{"Y", "X"}, nil, time.Minute)
	ctx := context.Background()

	first, err := provider.Catalog(ctx)
	require.NoError(t, err)
	second, err := provider.Catalog(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, []string{"Y", "X"}, first.Categories())

	require.NoError(t, provider.Invalidate(ctx))
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestProviderLoadFailure(t *testing.T) {
	source := &countingSource{err: errors.New("connection refused")}
	provider := NewProvider(source, nil, nil, time.Minute)

	catalog, err := provider.Catalog(context.Background())
	assert.Nil(t, catalog)

	var loadErr *gacha.DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "test", loadErr.Source)

	// Failures are not memoized
	source.err = nil
	source.records = testRecords()
	_, err = provider.Catalog(context.Background())
	assert.NoError(t, err)
}

func TestProviderSharesThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redis.InitRedis(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	defer redis.CloseRedis(rc)
	ctx := context.Background()

	source := &countingSource{records: testRecords()}
	_, err = NewProvider(source, nil, rc, time.Minute).Catalog(ctx)
	require.NoError(t, err)

	// A second process-level provider reads the cached snapshot
	other := NewProvider(source, nil, rc, time.Minute)
	catalog, err := other.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 2, catalog.Len())

	require.NoError(t, other.Invalidate(ctx))
	assert.False(t, mr.Exists("catalog:test"))
}

func TestProviderIgnoresBrokenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redis.InitRedis(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	defer redis.CloseRedis(rc)
	require.NoError(t, mr.Set("catalog:test", "garbage"))

	source := &countingSource{records: testRecords()}
	catalog, err := NewProvider(source, nil, rc, time.Minute).Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, 1, source.calls)
}

func TestProviderReloadsWhenSnapshotIsDeletedElsewhere(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redis.InitRedis(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	defer redis.CloseRedis(rc)
	ctx := context.Background()

	store := newTestStore(t)
	_, err = store.Import(ctx, "seed", []models.MenuItem{{Name: "ミラノ風ドリア", Price: 300, Category: "ドリア"}})
	require.NoError(t, err)

	provider := NewProvider(store, nil, rc, time.Minute)
	catalog, err := provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	// Another process imports more items and drops the shared snapshot
	_, err = store.Import(ctx, "file:menu.json", []models.MenuItem{{Name: "ドリンクバー", Price: 200, Category: "ドリンク"}})
	require.NoError(t, err)
	require.NoError(t, rc.DeleteCatalogSnapshot(ctx, store.Name()))

	catalog, err = provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
}

func TestProviderFollowsNewerSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redis.InitRedis(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	defer redis.CloseRedis(rc)
	ctx := context.Background()

	source := &countingSource{records: testRecords()}
	first := NewProvider(source, nil, rc, time.Minute)
	second := NewProvider(source, nil, rc, time.Minute)

	_, err = first.Catalog(ctx)
	require.NoError(t, err)
	catalog, err := second.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, 1, source.calls)

	// first reloads after a write, second picks the new snapshot up from Redis
	source.records = append(testRecords(), models.MenuItem{ID: 3, Name: "C", Price: 100, Category: "X"})
	require.NoError(t, first.Invalidate(ctx))
	_, err = first.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)

	catalog, err = second.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())
	assert.Equal(t, 2, source.calls, "read from the shared snapshot, not the source")

	// Unchanged snapshot keeps the memoized value
	again, err := second.Catalog(ctx)
	require.NoError(t, err)
	assert.Same(t, catalog, again)
}

func TestProviderReloadsAfterSnapshotExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redis.InitRedis(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	defer redis.CloseRedis(rc)
	ctx := context.Background()

	source := &countingSource{records: testRecords()}
	provider := NewProvider(source, nil, rc, time.Minute)
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}
