//go:build unit

package flight

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(carrier, from, departAt, to, arriveAt string) amadeus.Segment {
	return amadeus.Segment{
		CarrierCode: carrier,
		Departure:   &amadeus.FlightEndpoint{IATACode: from, At: departAt},
		Arrival:     &amadeus.FlightEndpoint{IATACode: to, At: arriveAt},
	}
}

func offer(id string, duration string, segments ...amadeus.Segment) amadeus.FlightOffer {
	return amadeus.FlightOffer{
		ID:          id,
		Itineraries: []amadeus.Itinerary{{Duration: duration, Segments: segments}},
		Price:       &amadeus.Price{Currency: "USD", Total: "645.00", GrandTotal: "645.00"},
	}
}

func TestNormalizeOffers(t *testing.T) {
	carriers := map[string]string{"EK": "Emirates", "BA": "British Airways"}

	normalize := func(offers []amadeus.FlightOffer, want []dto.FlightOffer) func(t *testing.T) {
		return func(t *testing.T) {
			got, err := NormalizeOffers(offers, carriers)
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("NormalizeOffers() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("direct_flight", normalize(
		[]amadeus.FlightOffer{offer("1", "PT7H15M",
			segment("EK", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:45:00"))},
		[]dto.FlightOffer{{
			ID: "1", Price: "645.00", Currency: "USD", Airline: "Emirates",
			Departure: "2025-01-15T08:30:00", Arrival: "2025-01-15T12:45:00",
			Duration: "PT7H15M", Stops: 0,
		}},
	))

	t.Run("connection_counts_one_stop", normalize(
		[]amadeus.FlightOffer{offer("2", "PT11H",
			segment("BA", "DXB", "2025-01-15T02:00:00", "MUC", "2025-01-15T06:00:00"),
			segment("LH", "MUC", "2025-01-15T08:00:00", "LHR", "2025-01-15T09:00:00"))},
		[]dto.FlightOffer{{
			ID: "2", Price: "645.00", Currency: "USD", Airline: "British Airways",
			Departure: "2025-01-15T02:00:00", Arrival: "2025-01-15T09:00:00",
			Duration: "PT11H", Stops: 1,
		}},
	))

	t.Run("unknown_carrier_keeps_code", normalize(
		[]amadeus.FlightOffer{offer("3", "PT7H",
			segment("ZZ", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:30:00"))},
		[]dto.FlightOffer{{
			ID: "3", Price: "645.00", Currency: "USD", Airline: "ZZ",
			Departure: "2025-01-15T08:30:00", Arrival: "2025-01-15T12:30:00",
			Duration: "PT7H", Stops: 0,
		}},
	))

	t.Run("only_outbound_itinerary_is_read", func(t *testing.T) {
		o := offer("4", "PT7H15M", segment("EK", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:45:00"))
		o.Itineraries = append(o.Itineraries, amadeus.Itinerary{
			Duration: "PT6H40M",
			Segments: []amadeus.Segment{
				segment("BA", "LHR", "2025-01-22T20:00:00", "FRA", "2025-01-22T22:30:00"),
				segment("EK", "FRA", "2025-01-23T00:10:00", "DXB", "2025-01-23T07:40:00"),
			},
		})

		got, err := NormalizeOffers([]amadeus.FlightOffer{o}, carriers)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Stops)
		assert.Equal(t, "PT7H15M", got[0].Duration)
		assert.Equal(t, "2025-01-15T12:45:00", got[0].Arrival)
	})

	t.Run("no_offers", normalize(nil, []dto.FlightOffer{}))
}

func TestNormalizeOffers_Malformed(t *testing.T) {
	valid := offer("ok", "PT7H", segment("EK", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:30:00"))

	malformed := func(bad amadeus.FlightOffer, reason string) func(t *testing.T) {
		return func(t *testing.T) {
			_, err := NormalizeOffers([]amadeus.FlightOffer{valid, bad}, nil)
			require.ErrorIs(t, err, ErrMalformedOffer)

			var offerErr *MalformedOfferError
			require.True(t, errors.As(err, &offerErr))
			assert.Equal(t, 1, offerErr.Index)
			assert.Equal(t, "bad", offerErr.OfferID)
			assert.Equal(t, reason, offerErr.Reason)
		}
	}

	t.Run("no_id", func(t *testing.T) {
		bad := offer("", "PT7H", segment("EK", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:30:00"))

		_, err := NormalizeOffers([]amadeus.FlightOffer{valid, bad}, nil)
		require.ErrorIs(t, err, ErrMalformedOffer)

		var offerErr *MalformedOfferError
		require.True(t, errors.As(err, &offerErr))
		assert.Equal(t, 1, offerErr.Index)
		assert.Equal(t, "no id", offerErr.Reason)
	})

	t.Run("no_duration", malformed(
		offer("bad", "", segment("EK", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:30:00")),
		"outbound itinerary has no duration",
	))

	t.Run("no_itineraries", malformed(amadeus.FlightOffer{ID: "bad", Price: valid.Price}, "no itineraries"))

	t.Run("no_segments", malformed(amadeus.FlightOffer{
		ID:          "bad",
		Itineraries: []amadeus.Itinerary{{Duration: "PT1H"}},
		Price:       valid.Price,
	}, "outbound itinerary has no segments"))

	t.Run("no_price", func(t *testing.T) {
		bad := offer("bad", "PT7H", segment("EK", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:30:00"))
		bad.Price = nil
		malformed(bad, "missing price total or currency")(t)
	})

	t.Run("no_departure", func(t *testing.T) {
		seg := segment("EK", "DXB", "", "LHR", "2025-01-15T12:30:00")
		malformed(offer("bad", "PT7H", seg), "first segment has no departure time")(t)
	})

	t.Run("no_arrival", func(t *testing.T) {
		seg := segment("EK", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:30:00")
		seg.Arrival = nil
		malformed(offer("bad", "PT7H", seg), "last segment has no arrival time")(t)
	})

	t.Run("no_carrier", func(t *testing.T) {
		seg := segment("", "DXB", "2025-01-15T08:30:00", "LHR", "2025-01-15T12:30:00")
		malformed(offer("bad", "PT7H", seg), "first segment has no carrierCode")(t)
	})
}

func TestAirlineName(t *testing.T) {
	assert.Equal(t, "Emirates", AirlineName("EK", map[string]string{"EK": "Emirates"}))
	assert.Equal(t, "EK", AirlineName("EK", nil))
	assert.Equal(t, "EK", AirlineName("EK", map[string]string{"EK": ""}))
}
