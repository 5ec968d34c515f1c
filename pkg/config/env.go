package config

import "time"

const (
	EnvPrefix = "LAREK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "LAREK_APP_ENV"
	EnvLogLevel     = "LAREK_LOG_LEVEL"
	EnvHTTPPort     = "LAREK_HTTP_PORT"
	EnvAPIURL       = "LAREK_API_URL"
	EnvCDNURL       = "LAREK_CDN_URL"
	EnvAPITimeout   = "LAREK_API_TIMEOUT"
	EnvRedisURL     = "LAREK_REDIS_URL"
	EnvCatalogTTL   = "LAREK_CATALOG_CACHE_TTL"
	EnvShutdownWait = "LAREK_HTTP_SHUTDOWN_TIMEOUT"
	EnvCORSOrigins  = "LAREK_HTTP_CORS_ORIGINS"

	defaultBackendTimeout = 10 * time.Second
)
