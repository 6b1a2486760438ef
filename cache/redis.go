package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis is a Redis-backed cache tier. It is an optional fast tier:
// every failure is logged and reported as a miss so an unreachable
// Redis never aborts a lookup.
type Redis struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *logrus.Logger
}

// RedisConfig holds configuration for the Redis tier.
type RedisConfig struct {
	URL       string         // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       time.Duration  // Entry TTL (0 = no expiration)
	KeyPrefix string         // Prefix for all keys (default: "lingo:")
	Logger    *logrus.Logger // Logger for tier failures (optional)
}

// NewRedis creates a new Redis tier with the given configuration.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisFromClient(client, cfg.TTL, cfg.KeyPrefix, cfg.Logger), nil
}

// NewRedisFromClient creates a Redis tier from an existing client.
func NewRedisFromClient(client *redis.Client, ttl time.Duration, keyPrefix string, logger *logrus.Logger) *Redis {
	if keyPrefix == "" {
		keyPrefix = "lingo:"
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.ErrorLevel)
	}

	return &Redis{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Get retrieves a value from Redis. Errors are logged and reported as a
// miss.
func (c *Redis) Get(key string) (string, bool) {
	ctx := context.Background()
	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.WithError(err).WithField("component", "redis_cache").Warn("redis get failed, treating as miss")
		return "", false
	}
	return val, true
}

// Set stores a value in Redis.
func (c *Redis) Set(key string, value string) error {
	ctx := context.Background()
	return c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *Redis) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *Redis) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

// Verify Redis implements Layer
var _ Layer = (*Redis)(nil)
