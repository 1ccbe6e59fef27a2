package wire

import (
	"context"
	"log/slog"
	"time"

	"github.com/lowcodejsorg/lowcodejs-sub005/cmd/config"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/cache"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/metrics"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/objectstore"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/infra/sql"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"

	"go.opentelemetry.io/otel/metric"
)

const _metricsShutdownTimeout = 5 * time.Second

// Core bundles the table services a process needs.
type Core struct {
	Registry *usecases.Registry
	Tables   usecases.TableService
	Fields   usecases.FieldService
}

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, error) {
	return sql.NewORM(sql.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		QueryTimeout: cfg.Database.QueryTimeout,
	})
}

func provideHandleCache() (cache.Cache, error) {
	return cache.New(cache.DefaultConfig())
}

func provideGenerationStore(cfg config.AppConfig) (cache.GenerationStore, error) {
	if cfg.Registry.GenerationStore != config.GenerationStoreRedis {
		return cache.NewMemoryGenerationStore(), nil
	}

	redisConfig := cache.DefaultRedisConfig()
	redisConfig.Addr = cfg.Redis.Addr
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB
	return cache.NewRedisGenerationStore(redisConfig)
}

func provideObjectStorage(cfg config.AppConfig) (usecases.ObjectStorage, error) {
	if cfg.Storage.Bucket == "" {
		slog.Warn("no storage bucket configured, file references are not checked")
		return objectstore.NoopStore{}, nil
	}
	return objectstore.NewGCSStore(context.Background(), cfg.Storage.Bucket)
}

func provideMeterProvider(cfg config.AppConfig) (metric.MeterProvider, func(), error) {
	provider, shutdown, err := metrics.StartProvider(context.Background(), metrics.ProviderOptions{
		Endpoint:      cfg.Metrics.OTLPEndpoint,
		CollectPeriod: cfg.Metrics.CollectPeriod,
		Insecure:      cfg.Metrics.Insecure,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), _metricsShutdownTimeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			slog.Warn("metrics shutdown failed", slog.String("error", err.Error()))
		}
	}
	return provider, cleanup, nil
}

func provideRecorder(provider metric.MeterProvider) (*metrics.Recorder, error) {
	return metrics.NewRecorder(provider)
}

func provideIDGenerator() usecases.IDGenerator {
	return usecases.UUIDGenerator{}
}

func provideRegistryConfig(cfg config.AppConfig) usecases.RegistryConfig {
	return usecases.RegistryConfig{HandleTTL: cfg.Registry.CacheTTL}
}
