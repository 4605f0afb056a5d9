package dto

import "net/http"

// LocationQuery is the airport-search tool input. CityName is forwarded to the
// provider untouched, empty strings included.
type LocationQuery struct {
	CityName string `json:"cityName"`
}

func (q *LocationQuery) Bind(_ *http.Request) error {
	return nil
}

// LocationCandidate is one airport or city matching a free text place name.
type LocationCandidate struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}

// LocationResponse is the airport-search tool output, in provider order.
type LocationResponse struct {
	Locations []LocationCandidate `json:"locations"`
}
