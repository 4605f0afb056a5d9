package amadeus

import (
	"context"
	"net/url"
	"strconv"
)

const (
	flightOffersPath      = "/v2/shopping/flight-offers"
	operationFlightOffers = "flight-offers-search"
)

// FlightOffersRequest mirrors the flight-offers GET parameters. ReturnDate is
// sent only when set.
type FlightOffersRequest struct {
	OriginLocationCode      string
	DestinationLocationCode string
	DepartureDate           string
	ReturnDate              string
	Adults                  int
	TravelClass             string
	NonStop                 bool
	Max                     int
}

func (r FlightOffersRequest) values() url.Values {
	query := url.Values{}
	query.Set("originLocationCode", r.OriginLocationCode)
	query.Set("destinationLocationCode", r.DestinationLocationCode)
	query.Set("departureDate", r.DepartureDate)
	query.Set("adults", strconv.Itoa(r.Adults))
	query.Set("nonStop", strconv.FormatBool(r.NonStop))

	if r.ReturnDate != "" {
		query.Set("returnDate", r.ReturnDate)
	}

	if r.TravelClass != "" {
		query.Set("travelClass", r.TravelClass)
	}

	if r.Max > 0 {
		query.Set("max", strconv.Itoa(r.Max))
	}

	return query
}

type FlightOffersResponse struct {
	Data         []FlightOffer `json:"data"`
	Dictionaries Dictionaries  `json:"dictionaries"`
}

// Dictionaries are scoped to one search response.
type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

type FlightOffer struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       *Price      `json:"price"`
}

// Itinerary is one directional leg. Duration is ISO-8601, e.g. PT7H15M.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   *FlightEndpoint `json:"departure"`
	Arrival     *FlightEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
}

// FlightEndpoint At is a local timestamp without offset, e.g. 2025-01-15T08:30:00.
type FlightEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

// SearchFlightOffers queries priced offers for one route and date.
func (c *Client) SearchFlightOffers(ctx context.Context, req FlightOffersRequest) (FlightOffersResponse, error) {
	var resp FlightOffersResponse
	if err := c.get(ctx, operationFlightOffers, flightOffersPath, req.values(), &resp); err != nil {
		return FlightOffersResponse{}, err
	}

	if resp.Data == nil {
		perr := newProviderError(operationFlightOffers, ErrMalformedPayload, nil)
		perr.Detail = "response has no data array"
		return FlightOffersResponse{}, perr
	}

	return resp, nil
}
