package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	GenerationStoreMemory = "memory"
	GenerationStoreRedis  = "redis"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		v := viper.New()
		v.SetConfigName("server")
		v.AddConfigPath("config")
		v.AddConfigPath("/config")
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = LoadConfigFrom(v)
	})

	return configInstance
}

// LoadConfigFrom reads the application config from v. Environment variables
// prefixed with LOWCODE override file values, e.g. LOWCODE_DATABASE_DSN.
func LoadConfigFrom(v *viper.Viper) AppConfig {
	v.SetEnvPrefix("lowcode")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("general.log_level", "info")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.query_timeout", 5*time.Second)
	v.SetDefault("registry.cache_ttl", 10*time.Minute)
	v.SetDefault("registry.generation_store", GenerationStoreMemory)
	v.SetDefault("metrics.collect_period", 30*time.Second)
	v.SetDefault("metrics.insecure", true)

	return AppConfig{
		General: GeneralConfig{
			LogLevel: v.GetString("general.log_level"),
		},
		Database: DatabaseConfig{
			Driver:       v.GetString("database.driver"),
			DSN:          v.GetString("database.dsn"),
			QueryTimeout: v.GetDuration("database.query_timeout"),
		},
		Registry: RegistryConfig{
			CacheTTL:        v.GetDuration("registry.cache_ttl"),
			GenerationStore: v.GetString("registry.generation_store"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Bucket: v.GetString("storage.bucket"),
		},
		Metrics: MetricsConfig{
			OTLPEndpoint:  v.GetString("metrics.otlp_endpoint"),
			CollectPeriod: v.GetDuration("metrics.collect_period"),
			Insecure:      v.GetBool("metrics.insecure"),
		},
	}
}

type AppConfig struct {
	General  GeneralConfig
	Database DatabaseConfig
	Registry RegistryConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Metrics  MetricsConfig
}

type GeneralConfig struct {
	LogLevel string
}

type DatabaseConfig struct {
	Driver       string
	DSN          string
	QueryTimeout time.Duration
}

type RegistryConfig struct {
	CacheTTL        time.Duration
	GenerationStore string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig names the bucket FILE references live in. An empty bucket
// disables existence checks.
type StorageConfig struct {
	Bucket string
}

// MetricsConfig points the OTLP exporter at a collector. Without an endpoint
// metrics stay in process.
type MetricsConfig struct {
	OTLPEndpoint  string
	CollectPeriod time.Duration
	Insecure      bool
}
