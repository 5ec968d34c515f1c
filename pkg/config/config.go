package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LAREK_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"LAREK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LAREK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	Port            string        `envconfig:"LAREK_HTTP_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"LAREK_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	SettleTimeout   time.Duration `envconfig:"LAREK_HTTP_SETTLE_TIMEOUT" default:"15s"`
	CORSOrigins     []string      `envconfig:"LAREK_HTTP_CORS_ORIGINS" default:"http://localhost:3000"`
}

// BackendConfig points at the shop API and the CDN its image paths are relative to.
type BackendConfig struct {
	APIURL  string        `envconfig:"LAREK_API_URL" required:"true"`
	CDNURL  string        `envconfig:"LAREK_CDN_URL" required:"true"`
	Timeout time.Duration `envconfig:"LAREK_API_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LAREK_REDIS_URL"`
	Address      string        `envconfig:"LAREK_REDIS_ADDR"`
	Password     string        `envconfig:"LAREK_REDIS_PASSWORD"`
	DB           int           `envconfig:"LAREK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LAREK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LAREK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LAREK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LAREK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LAREK_REDIS_WRITE_TIMEOUT" default:"5s"`
	CatalogTTL   time.Duration `envconfig:"LAREK_CATALOG_CACHE_TTL" default:"5m"`
}

// Enabled reports whether a redis endpoint was configured; the catalog cache is optional.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

func (b *BackendConfig) normalize() error {
	for env, raw := range map[string]*string{EnvAPIURL: &b.APIURL, EnvCDNURL: &b.CDNURL} {
		trimmed := strings.TrimRight(strings.TrimSpace(*raw), "/")
		u, err := url.Parse(trimmed)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute url, got %q", env, *raw)
		}
		*raw = trimmed
	}
	if b.Timeout <= 0 {
		b.Timeout = defaultBackendTimeout
	}
	return nil
}
