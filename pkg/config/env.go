package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// FITSYNC_ tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, docs).
const (
	EnvAppEnv      = "FITSYNC_APP_ENV"
	EnvPort        = "FITSYNC_APP_PORT"
	EnvDatabaseURL = "FITSYNC_DATABASE_URL"
	EnvRedisURL    = "FITSYNC_REDIS_URL"
	EnvSecretKey   = "FITSYNC_SECRET_KEY"
)
