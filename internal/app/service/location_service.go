package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/location"
)

type LocationSearcher interface {
	SearchLocations(ctx context.Context, keyword string) (amadeus.LocationsResponse, error)
}

type LocationCacher interface {
	Get(ctx context.Context, key string) ([]dto.LocationCandidate, bool, error)
	Set(ctx context.Context, key string, candidates []dto.LocationCandidate) error
	Purge(ctx context.Context) error
}

// LocationService resolves free text place names to airport and city codes.
// A nil Cache sends every lookup to the provider.
type LocationService struct {
	Provider LocationSearcher
	Cache    LocationCacher
}

func NewLocationService(provider LocationSearcher, cache LocationCacher) *LocationService {
	return &LocationService{
		Provider: provider,
		Cache:    cache,
	}
}

// ResolveLocations godoc
// @Summary      Resolve airport codes
// @Tags         Tools
// @Description  Converts city/airport names to IATA codes, in provider order
// @Param        request  body      dto.LocationQuery  true  "City name"
// @Success      200      {object}  dto.LocationResponse
// @Failure      429      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/tools/airport-search [post]
func (s *LocationService) ResolveLocations(ctx context.Context, query dto.LocationQuery) (dto.LocationResponse, error) {
	key := location.CacheKey(query.CityName)

	if s.Cache != nil {
		candidates, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "location cache read failed", slog.String("error", err.Error()))
		}

		if ok {
			slog.DebugContext(ctx, "location cache hit", slog.String("key", key))
			return dto.LocationResponse{Locations: candidates}, nil
		}

		slog.DebugContext(ctx, "location cache miss", slog.String("key", key))
	}

	resp, err := s.Provider.SearchLocations(ctx, query.CityName)
	if err != nil {
		return dto.LocationResponse{}, fmt.Errorf("search locations: %w", err)
	}

	candidates, err := location.ToCandidates(resp.Data)
	if err != nil {
		return dto.LocationResponse{}, fmt.Errorf("map locations: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, candidates); err != nil {
			slog.WarnContext(ctx, "location cache write failed", slog.String("error", err.Error()))
		}
	}

	return dto.LocationResponse{Locations: candidates}, nil
}

// PurgeCache drops every cached lookup. It is a no-op when caching is disabled.
func (s *LocationService) PurgeCache(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}

	if err := s.Cache.Purge(ctx); err != nil {
		return fmt.Errorf("purge location cache: %w", err)
	}

	slog.InfoContext(ctx, "location cache purged")

	return nil
}
