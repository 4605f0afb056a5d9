package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/logger"
)

type LocationService interface {
	ResolveLocations(ctx context.Context, query dto.LocationQuery) (dto.LocationResponse, error)
	PurgeCache(ctx context.Context) error
}

type LocationEndpoint struct {
	ResolveLocations endpoint.Endpoint
	PurgeCache       endpoint.Endpoint
}

func MakeLocationEndpoint(service LocationService) LocationEndpoint {
	return LocationEndpoint{
		ResolveLocations: makeResolveLocationsEndpoint(service),
		PurgeCache:       makePurgeCacheEndpoint(service),
	}
}

func makeResolveLocationsEndpoint(service LocationService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.LocationQuery)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		ctx = logger.WithTool(ctx, ToolAirportSearch)

		resp, err := service.ResolveLocations(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("location service: %w", err)
		}

		return resp, nil
	}
}

func makePurgeCacheEndpoint(service LocationService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		if err := service.PurgeCache(ctx); err != nil {
			return nil, fmt.Errorf("location service: %w", err)
		}

		return nil, nil
	}
}
