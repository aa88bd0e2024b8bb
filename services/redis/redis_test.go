package redis

import (
	"MenuGacha/models"
	redis_models "MenuGacha/models/redis"
	redis_utils "MenuGacha/services/redis/utils"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rc, err := InitRedis(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { CloseRedis(rc) })
	return rc, mr
}

func TestCatalogSnapshotOperations(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	snapshot := &redis_models.CatalogSnapshot{
		Items: []models.MenuItem{
			{ID: 1, Name: "ミラノ風ドリア", Price: 300, Category: "ドリア"},
		},
		Categories: []string{"ドリア"},
		LoadedAt:   time.Now().Unix(),
	}

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := rc.GetCatalogSnapshot(ctx, "db")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, rc.SaveCatalogSnapshot(ctx, "db", snapshot, time.Minute))

		got, err := rc.GetCatalogSnapshot(ctx, "db")
		require.NoError(t, err)
		assert.Equal(t, snapshot, got)
		assert.Equal(t, time.Minute, mr.TTL(redis_utils.FormatCatalogKey("db")))

		stamp, ok, err := rc.GetCatalogStamp(ctx, "db")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, snapshot.LoadedAt, stamp)
		assert.Equal(t, time.Minute, mr.TTL(redis_utils.FormatCatalogStampKey("db")))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, rc.DeleteCatalogSnapshot(ctx, "db"))
		assert.False(t, mr.Exists(redis_utils.FormatCatalogKey("db")))
		assert.False(t, mr.Exists(redis_utils.FormatCatalogStampKey("db")))

		_, ok, err := rc.GetCatalogStamp(ctx, "db")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupted snapshot", func(t *testing.T) {
		require.NoError(t, mr.Set(redis_utils.FormatCatalogKey("file"), "{not json"))
		_, err := rc.GetCatalogSnapshot(ctx, "file")
		assert.Error(t, err)
	})

	t.Run("cleanup keys", func(t *testing.T) {
		require.NoError(t, mr.Set("catalog:a", "1"))
		require.NoError(t, mr.Set("catalog:b", "2"))
		require.NoError(t, rc.CleanupKeys(ctx, []string{"catalog:a", "catalog:b"}))
		assert.False(t, mr.Exists("catalog:a"))
		assert.False(t, mr.Exists("catalog:b"))
	})
}

func TestInitRedisUnreachable(t *testing.T) {
	_, err := InitRedis(context.Background(), "127.0.0.1:1", 0)
	assert.Error(t, err)
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient("redis://:bad url", 0)
	assert.Error(t, err)
}
