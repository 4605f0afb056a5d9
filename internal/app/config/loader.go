package config

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("LOG_LEVEL", "info")
	vpr.SetDefault("LOG_FORMAT", "json")
	vpr.SetDefault("HTTP_PORT", 8080)
	vpr.SetDefault("HTTP_TIMEOUT", "30s")
	vpr.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:8444"})
	vpr.SetDefault("REDIS_TIMEOUT", "2s")
	vpr.SetDefault("AMADEUS_BASE_URL", "https://test.api.amadeus.com")
	vpr.SetDefault("AMADEUS_TIMEOUT", "15s")
	vpr.SetDefault("AMADEUS_MAX_RETRIES", 0)
	vpr.SetDefault("AMADEUS_RATE_LIMIT_RPS", 10)
	vpr.SetDefault("LOCATION_CACHE_BACKEND", CacheBackendMemory)
	vpr.SetDefault("LOCATION_CACHE_SIZE", 512)
	vpr.SetDefault("LOCATION_CACHE_TTL", "24h")
	vpr.SetDefault("FLIGHT_SEARCH_MAX_RESULTS", 5)
	vpr.SetDefault("FLIGHT_SEARCH_ENFORCE_MAX_RESULTS", false)
}

// MustInitConfig initializes configuration from .env file or environment variables.
// If configFile exists, it loads from the file. Otherwise, it automatically binds
// environment variables based on the Config struct's mapstructure tags.
func MustInitConfig(configFile string) Config {
	var (
		vpr = viper.New()
		cfg Config
	)

	setDefaults(vpr)

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))
	}

	// Automatically bind all environment variables from Config struct
	bindEnvFromStruct(vpr)

	// Unmarshal configuration into struct
	if err := vpr.Unmarshal(&cfg); err != nil {
		slog.Error("cannot unmarshal config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

// bindEnvFromStruct automatically binds environment variables based on mapstructure tags using reflection
func bindEnvFromStruct(vpr *viper.Viper) {
	bindEnvFromType(vpr, reflect.TypeOf(Config{}))
}

func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]
		isSquash := false
		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true
				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar == "" {
			continue
		}

		_ = vpr.BindEnv(envVar)

		val := vpr.Get(envVar)
		s, ok := val.(string)
		if !ok || s == "" {
			continue
		}

		switch {
		// slices of structs or structs may arrive as a JSON string
		case (field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.Struct) ||
			field.Type.Kind() == reflect.Struct:
			var jsonVal interface{}
			if err := json.Unmarshal([]byte(s), &jsonVal); err == nil {
				vpr.Set(envVar, jsonVal)
			}
		// plain string slices arrive comma separated
		case field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.String:
			items := strings.Split(s, ",")
			for i := range items {
				items[i] = strings.TrimSpace(items[i])
			}
			vpr.Set(envVar, items)
		}
	}
}
