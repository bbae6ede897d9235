package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"currency-converter/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrNotFound - ключа нет или истёк TTL
var ErrNotFound = errors.New("cache: key not found")

type RedisClient struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisClient создает новый Redis клиент и проверяет соединение
func NewRedisClient(cfg config.RedisConfig, prefix string, logger *zap.Logger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)

	return &RedisClient{
		client: client,
		prefix: prefix,
		logger: logger,
	}, nil
}

func (r *RedisClient) key(k string) string {
	return r.prefix + k
}

// Get возвращает значение по ключу или ErrNotFound
func (r *RedisClient) Get(ctx context.Context, k string) ([]byte, error) {
	key := r.key(k)
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		r.logger.Error("Redis GET error",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set сохраняет значение с TTL (0 - без срока)
func (r *RedisClient) Set(ctx context.Context, k string, value []byte, ttl time.Duration) error {
	key := r.key(k)
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Redis SET error",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	r.logger.Debug("Value saved to Redis",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// Delete удаляет ключ, отсутствие ключа ошибкой не считается
func (r *RedisClient) Delete(ctx context.Context, k string) error {
	key := r.key(k)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete key",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// HealthCheck проверяет доступность Redis
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		r.logger.Warn("Redis health check failed",
			zap.Error(err),
		)
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}

// Close закрывает подключение к Redis
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
