package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	S3        S3Config
	Cache     CacheConfig
	Redis     RedisConfig
	Transform TransformConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

// AuthConfig is the credential pair guarding uploads. Either the plaintext
// password or a bcrypt hash of it must be set; the hash wins when both are.
type AuthConfig struct {
	Username     string `envconfig:"UPLOAD_USER" required:"true"`
	Password     string `envconfig:"UPLOAD_PASS"`
	PasswordHash string `envconfig:"UPLOAD_PASSWORD_HASH"`
}

type S3Config struct {
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"S3_BUCKET" required:"true"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID" required:"true"`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY" required:"true"`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
}

// CacheConfig controls the URL-keyed response cache wrapping retrievals.
type CacheConfig struct {
	Enabled bool          `envconfig:"CACHE_ENABLED" default:"true"`
	Name    string        `envconfig:"CACHE_NAME" default:"cdn-img-fluffy"`
	TTL     time.Duration `envconfig:"CACHE_TTL" default:"720h"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TransformConfig toggles the transform capability binding. Disabled means
// every retrieval serves the stored bytes untouched.
type TransformConfig struct {
	Enabled bool `envconfig:"TRANSFORM_ENABLED" default:"true"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RateLimitConfig struct {
	Enabled        bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RequestsPerMin int  `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"60"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Auth.Password == "" && cfg.Auth.PasswordHash == "" {
		return nil, errors.New("loading config: UPLOAD_PASS or UPLOAD_PASSWORD_HASH must be set")
	}
	return &cfg, nil
}
