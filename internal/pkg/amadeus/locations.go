package amadeus

import (
	"context"
	"net/url"
)

const (
	locationsPath     = "/v1/reference-data/locations"
	locationSubTypes  = "AIRPORT,CITY"
	operationLocation = "location-search"
)

type LocationsResponse struct {
	Data []Location `json:"data"`
}

// Location is the subset of a reference-data location record this service reads.
type Location struct {
	Type         string   `json:"type"`
	SubType      string   `json:"subType"`
	Name         string   `json:"name"`
	DetailedName string   `json:"detailedName"`
	IATACode     string   `json:"iataCode"`
	Address      *Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CityCode    string `json:"cityCode"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
}

// SearchLocations looks up airports and cities matching keyword. Provider
// order is preserved; zero matches is an empty Data slice, not an error.
func (c *Client) SearchLocations(ctx context.Context, keyword string) (LocationsResponse, error) {
	query := url.Values{}
	query.Set("subType", locationSubTypes)
	query.Set("keyword", keyword)

	var resp LocationsResponse
	if err := c.get(ctx, operationLocation, locationsPath, query, &resp); err != nil {
		return LocationsResponse{}, err
	}

	if resp.Data == nil {
		perr := newProviderError(operationLocation, ErrMalformedPayload, nil)
		perr.Detail = "response has no data array"
		return LocationsResponse{}, perr
	}

	return resp, nil
}
