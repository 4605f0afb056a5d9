//go:build unit

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/flight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func providerOffer(id string, carriers ...string) amadeus.FlightOffer {
	segments := make([]amadeus.Segment, 0, len(carriers))
	for i, carrier := range carriers {
		segments = append(segments, amadeus.Segment{
			CarrierCode: carrier,
			Departure:   &amadeus.FlightEndpoint{At: fmt.Sprintf("2025-01-15T0%d:00:00", i)},
			Arrival:     &amadeus.FlightEndpoint{At: fmt.Sprintf("2025-01-15T0%d:30:00", i)},
		})
	}

	return amadeus.FlightOffer{
		ID:          id,
		Itineraries: []amadeus.Itinerary{{Duration: "PT7H15M", Segments: segments}},
		Price:       &amadeus.Price{Currency: "USD", Total: "645.00"},
	}
}

func TestFlightService_SearchFlights(t *testing.T) {
	baseQuery := dto.FlightSearchQuery{
		OriginCode:      "DXB",
		DestinationCode: "LHR",
		DepartureDate:   "2025-01-15",
	}

	baseRequest := amadeus.FlightOffersRequest{
		OriginLocationCode:      "DXB",
		DestinationLocationCode: "LHR",
		DepartureDate:           "2025-01-15",
		Adults:                  1,
		TravelClass:             "ECONOMY",
		NonStop:                 false,
		Max:                     5,
	}

	searchRequest := func(
		query dto.FlightSearchQuery,
		enforce bool,
		wantReq amadeus.FlightOffersRequest,
		resp amadeus.FlightOffersResponse,
		respErr error,
		want dto.SearchResult,
		wantErr error,
	) func(t *testing.T) {
		return func(t *testing.T) {
			provider := &MockFlightOfferSearcher{}
			provider.On("SearchFlightOffers", mock.Anything, wantReq).Return(resp, respErr).Once()

			s := NewFlightService(provider, 0, enforce)

			got, err := s.SearchFlights(context.Background(), query)
			provider.AssertExpectations(t)

			if wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(got.Flights), got.Count)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("SearchFlights() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("single_direct_offer", searchRequest(
		baseQuery, false, baseRequest,
		amadeus.FlightOffersResponse{
			Data:         []amadeus.FlightOffer{providerOffer("1", "EK")},
			Dictionaries: amadeus.Dictionaries{Carriers: map[string]string{"EK": "Emirates"}},
		}, nil,
		dto.SearchResult{
			Flights: []dto.FlightOffer{{
				ID: "1", Price: "645.00", Currency: "USD", Airline: "Emirates",
				Departure: "2025-01-15T00:00:00", Arrival: "2025-01-15T00:30:00",
				Duration: "PT7H15M", Stops: 0,
			}},
			Count: 1,
		}, nil,
	))

	t.Run("two_segments_is_one_stop", searchRequest(
		baseQuery, false, baseRequest,
		amadeus.FlightOffersResponse{Data: []amadeus.FlightOffer{providerOffer("1", "EK", "EK")}}, nil,
		dto.SearchResult{
			Flights: []dto.FlightOffer{{
				ID: "1", Price: "645.00", Currency: "USD", Airline: "EK",
				Departure: "2025-01-15T00:00:00", Arrival: "2025-01-15T01:30:00",
				Duration: "PT7H15M", Stops: 1,
			}},
			Count: 1,
		}, nil,
	))

	t.Run("explicit_fields_are_forwarded", func(t *testing.T) {
		query := baseQuery
		query.Adults = 2
		query.TravelClass = dto.TravelClassBusiness
		query.ReturnDate = "2025-01-22"
		query.DirectOnly = true

		req := baseRequest
		req.Adults = 2
		req.TravelClass = "BUSINESS"
		req.ReturnDate = "2025-01-22"
		req.NonStop = true

		searchRequest(query, false, req,
			amadeus.FlightOffersResponse{Data: []amadeus.FlightOffer{}}, nil,
			dto.SearchResult{Flights: []dto.FlightOffer{}, Count: 0}, nil,
		)(t)
	})

	t.Run("no_offers_is_empty_success", searchRequest(
		baseQuery, false, baseRequest,
		amadeus.FlightOffersResponse{Data: []amadeus.FlightOffer{}}, nil,
		dto.SearchResult{Flights: []dto.FlightOffer{}, Count: 0}, nil,
	))

	t.Run("provider_error", searchRequest(
		baseQuery, false, baseRequest,
		amadeus.FlightOffersResponse{}, &amadeus.ProviderError{Err: amadeus.ErrRateLimitExceeded},
		dto.SearchResult{}, amadeus.ErrRateLimitExceeded,
	))

	t.Run("malformed_offer_fails_call", searchRequest(
		baseQuery, false, baseRequest,
		amadeus.FlightOffersResponse{Data: []amadeus.FlightOffer{providerOffer("1", "EK"), {ID: "2"}}}, nil,
		dto.SearchResult{}, flight.ErrMalformedOffer,
	))

	overDelivered := amadeus.FlightOffersResponse{}
	for i := 0; i < 7; i++ {
		overDelivered.Data = append(overDelivered.Data, providerOffer(fmt.Sprint(i), "EK"))
	}

	t.Run("over_delivery_is_reported_as_received", func(t *testing.T) {
		provider := &MockFlightOfferSearcher{}
		provider.On("SearchFlightOffers", mock.Anything, baseRequest).Return(overDelivered, nil)

		got, err := NewFlightService(provider, 5, false).SearchFlights(context.Background(), baseQuery)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Count)
		assert.Len(t, got.Flights, 7)
	})

	t.Run("over_delivery_is_truncated_when_enforced", func(t *testing.T) {
		provider := &MockFlightOfferSearcher{}
		provider.On("SearchFlightOffers", mock.Anything, baseRequest).Return(overDelivered, nil)

		got, err := NewFlightService(provider, 5, true).SearchFlights(context.Background(), baseQuery)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Count)
		assert.Len(t, got.Flights, 5)
		assert.Equal(t, "0", got.Flights[0].ID)
		assert.Equal(t, "4", got.Flights[4].ID)
	})
}
