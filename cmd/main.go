package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ijalalfrz/flight-agent-tools/internal/app/config"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/endpoints"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/service"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/transport"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/location"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/logger"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

// @title           Flight Agent Tools API
// @version         0.0.1
// @description     airport-search and flight-search tools for a travel assistant agent
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel, cfg.LogFormat)

	slog.Debug("config loaded successfully",
		slog.String("amadeus_base_url", cfg.Amadeus.BaseURL),
		slog.String("location_cache_backend", cfg.LocationCache.Backend),
		slog.Bool("redis_enabled", cfg.Redis.Addr != ""))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	redisClient := newRedisClient(&cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	endpts := makeEndpoints(ctx, &cfg, redisClient)
	router := transport.MakeHTTPRouter(&cfg, endpts, metrics.Handler(metrics.NewRegistry()))
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

// newRedisClient returns nil when no redis address is configured.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.Timeout,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
	})
}

func makeEndpoints(ctx context.Context, cfg *config.Config, redisClient *redis.Client) endpoints.Endpoints {
	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	client := amadeus.NewClient(amadeus.Config{
		BaseURL:      cfg.Amadeus.BaseURL,
		ClientID:     cfg.Amadeus.ClientID,
		ClientSecret: cfg.Amadeus.ClientSecret,
		Timeout:      cfg.Amadeus.Timeout,
		MaxRetries:   cfg.Amadeus.MaxRetries,
		Limiter:      newLimiter(ctx, cfg, redisClient),
	})

	locationService := service.NewLocationService(client, newLocationCache(ctx, cfg, redisClient))

	flightService := service.NewFlightService(client,
		cfg.FlightSearch.MaxResults, cfg.FlightSearch.EnforceMaxResults)

	return endpoints.MakeEndpoints(locationService, flightService)
}

// newLimiter shares the provider budget through redis when available. A
// non-positive rate disables throttling.
func newLimiter(ctx context.Context, cfg *config.Config, redisClient *redis.Client) amadeus.Limiter {
	if cfg.Amadeus.RateLimitRPS <= 0 {
		return nil
	}

	if redisClient != nil {
		slog.InfoContext(ctx, "using redis rate limiter", slog.Int("rps", cfg.Amadeus.RateLimitRPS))
		return amadeus.NewRedisLimiter(redisClient, cfg.Amadeus.RateLimitRPS)
	}

	slog.InfoContext(ctx, "using in-process rate limiter", slog.Int("rps", cfg.Amadeus.RateLimitRPS))

	return amadeus.NewLocalLimiter(cfg.Amadeus.RateLimitRPS)
}

func newLocationCache(ctx context.Context, cfg *config.Config, redisClient *redis.Client) service.LocationCacher {
	switch cfg.LocationCache.Backend {
	case config.CacheBackendDisabled:
		slog.InfoContext(ctx, "location cache disabled")
		return nil
	case config.CacheBackendRedis:
		if redisClient != nil {
			return location.NewRedisCache(redisClient, cfg.LocationCache.TTL)
		}

		slog.WarnContext(ctx, "redis location cache requested without REDIS_ADDR, using memory cache")
	}

	return location.NewMemoryCache(cfg.LocationCache.Size, cfg.LocationCache.TTL)
}
