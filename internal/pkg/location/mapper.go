package location

import (
	"fmt"

	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
)

const operationMapping = "location-mapping"

// ToCandidates maps provider records to candidates in provider order. The
// city falls back to the record name when the provider omits an address.
func ToCandidates(records []amadeus.Location) ([]dto.LocationCandidate, error) {
	candidates := make([]dto.LocationCandidate, 0, len(records))

	for i, rec := range records {
		if rec.IATACode == "" || rec.Name == "" {
			return nil, &amadeus.ProviderError{
				Operation: operationMapping,
				Detail:    fmt.Sprintf("location %d has no iataCode or name", i),
				Err:       amadeus.ErrMalformedPayload,
			}
		}

		candidate := dto.LocationCandidate{
			Code:     rec.IATACode,
			Name:     rec.Name,
			CityName: rec.Name,
		}

		if rec.Address != nil {
			if rec.Address.CityName != "" {
				candidate.CityName = rec.Address.CityName
			}
			candidate.CountryName = rec.Address.CountryName
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
