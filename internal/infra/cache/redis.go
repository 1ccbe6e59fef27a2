package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const _generationKeyPrefix = "lowcode:table:generation:"

// publishScript stores ARGV[1] only when it is greater than the current value
const publishScript = `
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local next = tonumber(ARGV[1])
if next > current then
	redis.call('SET', KEYS[1], ARGV[1])
	return 1
end
return 0
`

// RedisConfig holds configuration for the Redis connection
type RedisConfig struct {
	// Addr is the Redis server address (e.g., "localhost:6379")
	Addr string
	// Password is the Redis password (optional)
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// PoolSize is the maximum number of connections in the pool
	PoolSize int
	// MaxRetries is the maximum number of retries for failed commands
	MaxRetries int
	// DialTimeout is the timeout for establishing new connections
	DialTimeout time.Duration
	// ReadTimeout is the timeout for socket reads
	ReadTimeout time.Duration
	// WriteTimeout is the timeout for socket writes
	WriteTimeout time.Duration
}

// DefaultRedisConfig returns a default Redis configuration
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

var _ GenerationStore = (*RedisGenerationStore)(nil)

// RedisGenerationStore shares table generations between every process that
// serves the same database, so a field change on one instance invalidates
// the compiled schemas cached by the others.
type RedisGenerationStore struct {
	client GenerationClient
	config *RedisConfig
}

// NewRedisGenerationStore connects to Redis and verifies the connection
func NewRedisGenerationStore(config *RedisConfig) (*RedisGenerationStore, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Redis generation store initialized",
		slog.String("addr", config.Addr),
		slog.Int("db", config.DB))

	return NewRedisGenerationStoreWithClient(NewRedisClient(client), config), nil
}

// NewRedisGenerationStoreWithClient builds a store on top of an existing client
func NewRedisGenerationStoreWithClient(client GenerationClient, config *RedisConfig) *RedisGenerationStore {
	return &RedisGenerationStore{
		client: client,
		config: config,
	}
}

func (s *RedisGenerationStore) Get(ctx context.Context, slug string) (int64, bool, error) {
	result, err := s.client.Get(ctx, _generationKeyPrefix+slug).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading generation from Redis: %w", err)
	}

	generation, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		slog.Error("invalid generation stored in Redis",
			slog.String("slug", slug),
			slog.String("value", result))
		return 0, false, nil
	}

	return generation, true, nil
}

func (s *RedisGenerationStore) Publish(ctx context.Context, slug string, generation int64) error {
	err := s.client.Eval(ctx, publishScript, []string{_generationKeyPrefix + slug}, generation).Err()
	if err != nil {
		return fmt.Errorf("publishing generation to Redis: %w", err)
	}
	return nil
}

// PingWithContext tests the Redis connection with context
func (s *RedisGenerationStore) PingWithContext(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
