package flight

import (
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
)

// NormalizeOffers converts provider offers in order. The first offer that
// cannot be normalized aborts the whole conversion.
func NormalizeOffers(offers []amadeus.FlightOffer, carriers map[string]string) ([]dto.FlightOffer, error) {
	flights := make([]dto.FlightOffer, 0, len(offers))

	for i, offer := range offers {
		flight, reason := normalizeOffer(offer, carriers)
		if reason != "" {
			return nil, &MalformedOfferError{
				Index:   i,
				OfferID: offer.ID,
				Reason:  reason,
			}
		}

		flights = append(flights, flight)
	}

	return flights, nil
}

// normalizeOffer reads the outbound itinerary only. A non-empty reason means
// the offer is malformed.
func normalizeOffer(offer amadeus.FlightOffer, carriers map[string]string) (dto.FlightOffer, string) {
	if offer.ID == "" {
		return dto.FlightOffer{}, "no id"
	}

	if len(offer.Itineraries) == 0 {
		return dto.FlightOffer{}, "no itineraries"
	}

	itinerary := offer.Itineraries[0]
	if len(itinerary.Segments) == 0 {
		return dto.FlightOffer{}, "outbound itinerary has no segments"
	}

	if itinerary.Duration == "" {
		return dto.FlightOffer{}, "outbound itinerary has no duration"
	}

	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	switch {
	case first.Departure == nil || first.Departure.At == "":
		return dto.FlightOffer{}, "first segment has no departure time"
	case last.Arrival == nil || last.Arrival.At == "":
		return dto.FlightOffer{}, "last segment has no arrival time"
	case first.CarrierCode == "":
		return dto.FlightOffer{}, "first segment has no carrierCode"
	case offer.Price == nil || offer.Price.Total == "" || offer.Price.Currency == "":
		return dto.FlightOffer{}, "missing price total or currency"
	}

	return dto.FlightOffer{
		ID:        offer.ID,
		Price:     offer.Price.Total,
		Currency:  offer.Price.Currency,
		Airline:   AirlineName(first.CarrierCode, carriers),
		Departure: first.Departure.At,
		Arrival:   last.Arrival.At,
		Duration:  itinerary.Duration,
		Stops:     len(itinerary.Segments) - 1,
	}, ""
}

// AirlineName resolves a carrier code through the response dictionary, falling
// back to the code itself.
func AirlineName(code string, carriers map[string]string) string {
	if name, ok := carriers[code]; ok && name != "" {
		return name
	}

	return code
}
