package redis

import (
	redis_models "MenuGacha/models/redis"
	redis_utils "MenuGacha/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client instance. Addr is either a
// redis:// URL or a plain host:port.
func NewRedisClient(Addr string, DB int) (*RedisClient, error) {
	var client *redis.Client
	if strings.Contains(Addr, "://") {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{client: client}, nil
}

// SaveCatalogSnapshot stores a loaded catalog in Redis, together with its
// LoadedAt stamp so other processes can tell their copy is outdated.
// Key format: "catalog:{source}" and "catalog:{source}:stamp"
func (rc *RedisClient) SaveCatalogSnapshot(ctx context.Context, source string, snapshot *redis_models.CatalogSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshaling catalog snapshot: %w", err)
	}

	_, err = rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redis_utils.FormatCatalogKey(source), data, ttl)
		pipe.Set(ctx, redis_utils.FormatCatalogStampKey(source), snapshot.LoadedAt, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error saving catalog snapshot: %w", err)
	}
	return nil
}

// GetCatalogStamp returns the LoadedAt of the cached snapshot
// Returns: ok false when nothing is cached
func (rc *RedisClient) GetCatalogStamp(ctx context.Context, source string) (stamp int64, ok bool, err error) {
	stamp, err = rc.client.Get(ctx, redis_utils.FormatCatalogStampKey(source)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error getting catalog stamp: %w", err)
	}
	return stamp, true, nil
}

// GetCatalogSnapshot retrieves a cached catalog
// Returns: nil, nil when nothing is cached
func (rc *RedisClient) GetCatalogSnapshot(ctx context.Context, source string) (*redis_models.CatalogSnapshot, error) {
	key := redis_utils.FormatCatalogKey(source)
	data, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting catalog snapshot: %w", err)
	}

	var snapshot redis_models.CatalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("error unmarshaling catalog snapshot: %w", err)
	}
	return &snapshot, nil
}

// DeleteCatalogSnapshot drops the cached catalog so the next load hits the source
func (rc *RedisClient) DeleteCatalogSnapshot(ctx context.Context, source string) error {
	keys := []string{redis_utils.FormatCatalogKey(source), redis_utils.FormatCatalogStampKey(source)}
	if err := rc.CleanupKeys(ctx, keys); err != nil {
		return fmt.Errorf("error deleting catalog snapshot: %w", err)
	}
	return nil
}
