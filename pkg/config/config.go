package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	ML           MLConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FITSYNC_APP_ENV" default:"dev"`
	Port         string `envconfig:"FITSYNC_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"FITSYNC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FITSYNC_LOG_WARN_STACK" default:"false"`
	AllowedHosts string `envconfig:"FITSYNC_ALLOWED_HOSTS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	URL    string `envconfig:"FITSYNC_DATABASE_URL" required:"true"`
	Driver string `envconfig:"FITSYNC_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"FITSYNC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FITSYNC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FITSYNC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FITSYNC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: with no URL the cache falls back to the
// in-process store and rate limiting is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"FITSYNC_REDIS_URL"`
	PoolSize     int           `envconfig:"FITSYNC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FITSYNC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FITSYNC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FITSYNC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FITSYNC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis backend was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"FITSYNC_SECRET_KEY" required:"true"`
	Issuer            string `envconfig:"FITSYNC_JWT_ISSUER" default:"fitsync"`
	ExpirationMinutes int    `envconfig:"FITSYNC_ACCESS_TOKEN_EXPIRE_MINUTES" default:"60"`
}

type RateLimitConfig struct {
	Requests int           `envconfig:"FITSYNC_RATE_LIMIT_REQUESTS" default:"120"`
	Period   time.Duration `envconfig:"FITSYNC_RATE_LIMIT_PERIOD" default:"1m"`
}

// Enabled reports whether the global limiter should be applied.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.Period > 0
}

type MLConfig struct {
	EnableGPU     bool   `envconfig:"FITSYNC_ENABLE_GPU" default:"false"`
	ModelCacheDir string `envconfig:"FITSYNC_MODEL_CACHE_DIR" default:"./models"`
	YOLOModelPath string `envconfig:"FITSYNC_YOLO_MODEL_PATH"`
}

type CORSConfig struct {
	Origins []string `envconfig:"FITSYNC_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FITSYNC_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FITSYNC_AUTO_MIGRATE" default:"false"`
}
