package dto

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/exception"
)

type TravelClass string

const (
	TravelClassEconomy        TravelClass = "ECONOMY"
	TravelClassPremiumEconomy TravelClass = "PREMIUM_ECONOMY"
	TravelClassBusiness       TravelClass = "BUSINESS"
	TravelClassFirst          TravelClass = "FIRST"
)

const (
	DefaultAdults      = 1
	DefaultTravelClass = TravelClassEconomy
)

// FlightSearchQuery is the flight-search tool input. Adults 0 and an empty
// TravelClass mean "not supplied" and are replaced by SetDefaults.
type FlightSearchQuery struct {
	OriginCode      string      `json:"originCode" validate:"required"`
	DestinationCode string      `json:"destinationCode" validate:"required,nefield=OriginCode"`
	DepartureDate   string      `json:"departureDate" validate:"required,datetime=2006-01-02"`
	Adults          int         `json:"adults" validate:"gte=1"`
	ReturnDate      string      `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TravelClass     TravelClass `json:"travelClass" validate:"oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	DirectOnly      bool        `json:"directOnly"`
}

// SetDefaults fills the optional fields the caller left out.
func (q *FlightSearchQuery) SetDefaults() {
	if q.Adults == 0 {
		q.Adults = DefaultAdults
	}

	if q.TravelClass == "" {
		q.TravelClass = DefaultTravelClass
	}
}

func (q *FlightSearchQuery) Bind(_ *http.Request) error {
	q.SetDefaults()

	if err := q.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (q *FlightSearchQuery) Validate() error {
	if err := ValidateSingleError(q); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// FlightOffer is a priced itinerary normalized for presentation. Departure and
// Arrival are the provider's local timestamps, Duration its ISO-8601 duration.
type FlightOffer struct {
	ID        string `json:"id"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	Airline   string `json:"airline"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  string `json:"duration"`
	Stops     int    `json:"stops"`
}

// SearchResult is the flight-search tool output. Count always equals len(Flights).
type SearchResult struct {
	Flights []FlightOffer `json:"flights"`
	Count   int           `json:"count"`
}

// NewSearchResult keeps Count in step with Flights and never returns a nil slice.
func NewSearchResult(flights []FlightOffer) SearchResult {
	if flights == nil {
		flights = []FlightOffer{}
	}

	return SearchResult{
		Flights: flights,
		Count:   len(flights),
	}
}
