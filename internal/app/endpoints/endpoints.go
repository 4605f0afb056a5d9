package endpoints

// Endpoints groups every endpoint exposed by the transport layer.
type Endpoints struct {
	LocationEndpoint LocationEndpoint
	FlightEndpoint   FlightEndpoint
	ToolEndpoint     ToolEndpoint
}

func MakeEndpoints(locationSvc LocationService, flightSvc FlightService) Endpoints {
	return Endpoints{
		LocationEndpoint: MakeLocationEndpoint(locationSvc),
		FlightEndpoint:   MakeFlightEndpoint(flightSvc),
		ToolEndpoint:     MakeToolEndpoint(),
	}
}
