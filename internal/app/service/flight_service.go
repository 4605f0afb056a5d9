package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/flight"
)

const DefaultMaxResults = 5

type FlightOfferSearcher interface {
	SearchFlightOffers(ctx context.Context, req amadeus.FlightOffersRequest) (amadeus.FlightOffersResponse, error)
}

// FlightService searches priced offers for one route. MaxResults is requested
// from the provider; the response is only truncated locally when
// EnforceMaxResults is set.
type FlightService struct {
	Provider          FlightOfferSearcher
	MaxResults        int
	EnforceMaxResults bool
}

func NewFlightService(provider FlightOfferSearcher, maxResults int, enforceMaxResults bool) *FlightService {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &FlightService{
		Provider:          provider,
		MaxResults:        maxResults,
		EnforceMaxResults: enforceMaxResults,
	}
}

// SearchFlights godoc
// @Summary      Search flights
// @Tags         Tools
// @Description  Searches for real flight offers with live pricing
// @Param        request  body      dto.FlightSearchQuery  true  "Flight query"
// @Success      200      {object}  dto.SearchResult
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      429      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/tools/flight-search [post]
func (s *FlightService) SearchFlights(ctx context.Context, query dto.FlightSearchQuery) (dto.SearchResult, error) {
	query.SetDefaults()

	resp, err := s.Provider.SearchFlightOffers(ctx, amadeus.FlightOffersRequest{
		OriginLocationCode:      query.OriginCode,
		DestinationLocationCode: query.DestinationCode,
		DepartureDate:           query.DepartureDate,
		ReturnDate:              query.ReturnDate,
		Adults:                  query.Adults,
		TravelClass:             string(query.TravelClass),
		NonStop:                 query.DirectOnly,
		Max:                     s.MaxResults,
	})
	if err != nil {
		return dto.SearchResult{}, fmt.Errorf("search flight offers: %w", err)
	}

	flights, err := flight.NormalizeOffers(resp.Data, resp.Dictionaries.Carriers)
	if err != nil {
		return dto.SearchResult{}, fmt.Errorf("normalize flight offers: %w", err)
	}

	if len(flights) > s.MaxResults {
		slog.WarnContext(ctx, "provider returned more offers than requested",
			slog.Int("requested", s.MaxResults),
			slog.Int("received", len(flights)))

		if s.EnforceMaxResults {
			flights = flights[:s.MaxResults]
		}
	}

	return dto.NewSearchResult(flights), nil
}
