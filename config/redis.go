package config

import (
	"MenuGacha/services/redis"
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Connect_redis connects to Redis. The catalog cache is optional, so a
// failure is returned to the caller instead of stopping the process.
func Connect_redis(cfg RedisConfig) (*redis.RedisClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisClient, err := redis.InitRedis(ctx, cfg.URL, cfg.Database)
	if err != nil {
		log.Printf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
