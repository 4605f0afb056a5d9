package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Location cache backends.
const (
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendDisabled = "disabled"
)

// Config holds the server configuration.
type Config struct {
	LogLevel      LogLeveler    `mapstructure:"LOG_LEVEL"`
	LogFormat     string        `mapstructure:"LOG_FORMAT"`
	HTTP          HTTP          `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	Amadeus       Amadeus       `mapstructure:",squash"`
	LocationCache LocationCache `mapstructure:",squash"`
	FlightSearch  FlightSearch  `mapstructure:",squash"`
}

type HTTP struct {
	Port               int           `mapstructure:"HTTP_PORT"`
	Timeout            time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Redis is optional. An empty address disables the redis cache backend and
// the distributed rate limiter.
type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Amadeus holds the travel data provider configuration.
type Amadeus struct {
	BaseURL      string        `mapstructure:"AMADEUS_BASE_URL"`
	ClientID     string        `mapstructure:"AMADEUS_CLIENT_ID"`
	ClientSecret string        `mapstructure:"AMADEUS_CLIENT_SECRET"`
	Timeout      time.Duration `mapstructure:"AMADEUS_TIMEOUT"`
	MaxRetries   int           `mapstructure:"AMADEUS_MAX_RETRIES"`
	RateLimitRPS int           `mapstructure:"AMADEUS_RATE_LIMIT_RPS"`
}

type LocationCache struct {
	Backend string        `mapstructure:"LOCATION_CACHE_BACKEND"`
	Size    int           `mapstructure:"LOCATION_CACHE_SIZE"`
	TTL     time.Duration `mapstructure:"LOCATION_CACHE_TTL"`
}

type FlightSearch struct {
	MaxResults        int  `mapstructure:"FLIGHT_SEARCH_MAX_RESULTS"`
	EnforceMaxResults bool `mapstructure:"FLIGHT_SEARCH_ENFORCE_MAX_RESULTS"`
}
