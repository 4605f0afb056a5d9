package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/logger"
)

type FlightService interface {
	SearchFlights(ctx context.Context, query dto.FlightSearchQuery) (dto.SearchResult, error)
}

type FlightEndpoint struct {
	SearchFlights endpoint.Endpoint
}

func MakeFlightEndpoint(service FlightService) FlightEndpoint {
	return FlightEndpoint{
		SearchFlights: makeSearchFlightsEndpoint(service),
	}
}

func makeSearchFlightsEndpoint(service FlightService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FlightSearchQuery)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		ctx = logger.WithTool(ctx, ToolFlightSearch)

		result, err := service.SearchFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("flight service: %w", err)
		}

		return result, nil
	}
}
