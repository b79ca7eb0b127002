package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	redisClient "veriface.io/infrastructure/database/connection/cache"
	"veriface.io/infrastructure/logger"
)

type RedisRepository struct {
	Client *redis.Client
}

var Cache = RedisRepository{}

func (redisRepo *RedisRepository) preRequest() {
	if redisRepo.Client == nil {
		redisRepo.Client = redisClient.GetInstance()
		logger.Info("redis repository initialisation complete")
	}
}

func (redisRepo *RedisRepository) CreateEntry(key string, payload interface{}, ttl time.Duration) bool {
	redisRepo.preRequest()
	ctx := context.Background()
	_, err := redisRepo.Client.Set(ctx, key, payload, ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return true
}

func (redisRepo *RedisRepository) FindOne(key string) *string {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.Get(ctx, key).Result()

	if err != nil {
		if err == redis.Nil {
			return nil
		}
		logger.Error("redis error occured while running FindOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil
	}
	return &result
}

func (redisRepo *RedisRepository) DeleteOne(key string) bool {
	redisRepo.preRequest()
	ctx := context.Background()

	result, err := redisRepo.Client.Del(ctx, key).Result()

	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return int(result) == 1
}

func (redisRepo *RedisRepository) Expire(key string, ttl time.Duration) bool {
	redisRepo.preRequest()
	ctx := context.Background()

	ok, err := redisRepo.Client.Expire(ctx, key, ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running Expire", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	return ok
}

// AcquireLock takes a short-lived advisory lock for the given key using
// SETNX semantics. The returned release function is a no-op when the lock
// was not acquired.
func (redisRepo *RedisRepository) AcquireLock(key string, ttl time.Duration) (func(), bool) {
	redisRepo.preRequest()
	ctx := context.Background()

	acquired, err := redisRepo.Client.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running AcquireLock", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return func() {}, false
	}
	if !acquired {
		return func() {}, false
	}
	return func() {
		redisRepo.Client.Del(context.Background(), key)
	}, true
}
