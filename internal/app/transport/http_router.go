package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/config"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/flight-agent-tools/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
// metricsHandler may be nil to leave /metrics unrouted.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	metricsHandler http.Handler,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if metricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	router.Route("/api/v1/tools", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(cfg.HTTP.CORSAllowedOrigins),
			httptransport.Recoverer(slog.Default()),
			httptransport.Metrics(),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Get("/", httptransport.MakeHandlerFunc(
			endpts.ToolEndpoint.ListTools,
			httptransport.NoRequest,
			httptransport.ResponseWithBody,
		))

		router.Post("/airport-search", httptransport.MakeHandlerFunc(
			endpts.LocationEndpoint.ResolveLocations,
			httptransport.DecodeRequest[dto.LocationQuery],
			httptransport.ResponseWithBody,
		))

		router.Delete("/airport-search/cache", httptransport.MakeHandlerFunc(
			endpts.LocationEndpoint.PurgeCache,
			httptransport.NoRequest,
			httptransport.NoContentResponse,
		))

		router.Post("/flight-search", httptransport.MakeHandlerFunc(
			endpts.FlightEndpoint.SearchFlights,
			httptransport.DecodeRequest[dto.FlightSearchQuery],
			httptransport.ResponseWithBody,
		))
	})

	return router
}
