package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	HTTP     HTTPConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	GRPCPort string `envconfig:"GRPC_PORT" default:":8082"`
	// memory or postgres
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	// Trust x-vendor-id metadata on gRPC calls without a token. Development only.
	AllowMetadataIdentity bool `envconfig:"GRPC_ALLOW_METADATA_IDENTITY" default:"false"`
}

type HTTPConfig struct {
	Port            string        `envconfig:"HTTP_PORT" default:":4000"`
	RateLimit       float64       `envconfig:"HTTP_RATE_LIMIT" default:"50"`
	RateBurst       int           `envconfig:"HTTP_RATE_BURST" default:"100"`
	CORSOrigin      string        `envconfig:"HTTP_CORS_ORIGIN" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type LoggerConfig struct {
	Level             string `envconfig:"LOGGER_LEVEL" default:"debug"`
	Encoding          string `envconfig:"LOGGER_ENCODING" default:"console"`
	DisableCaller     bool   `envconfig:"LOGGER_DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"LOGGER_DISABLE_STACKTRACE" default:"true"`
}

type PostgresConfig struct {
	Host            string        `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port            string        `envconfig:"POSTGRES_PORT" default:"5432"`
	User            string        `envconfig:"POSTGRES_USER" default:"florist"`
	Password        string        `envconfig:"POSTGRES_PASSWORD" default:"florist"`
	DBName          string        `envconfig:"POSTGRES_DB" default:"florist_marketplace"`
	SSLMode         string        `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"1m"`
}

type JWTConfig struct {
	SecretKey string `envconfig:"JWT_SECRET_KEY" default:"your-secret-key-change-this-in-prod"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"marketplace.events"`
	GroupID string   `envconfig:"KAFKA_GROUP" default:"catalog-cache"`
}

type ElasticsearchConfig struct {
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES" default:"http://localhost:9200"`
	Username  string   `envconfig:"ELASTICSEARCH_USERNAME"`
	Password  string   `envconfig:"ELASTICSEARCH_PASSWORD"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"30s"`
}

func LoadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}
