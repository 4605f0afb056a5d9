package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
)

const (
	ToolAirportSearch = "airport-search"
	ToolFlightSearch  = "flight-search"
)

// Catalog lists the tools in the order agents should discover them.
var Catalog = []dto.Tool{
	{
		ID:          ToolAirportSearch,
		Description: `Converts city/airport names to IATA codes (e.g., "London" → "LHR")`,
	},
	{
		ID:          ToolFlightSearch,
		Description: "Searches for real flight offers with live pricing",
	},
}

type ToolEndpoint struct {
	ListTools endpoint.Endpoint
}

func MakeToolEndpoint() ToolEndpoint {
	return ToolEndpoint{
		ListTools: func(_ context.Context, _ interface{}) (interface{}, error) {
			tools := make([]dto.Tool, len(Catalog))
			copy(tools, Catalog)

			return dto.ToolCatalogResponse{Tools: tools}, nil
		},
	}
}
