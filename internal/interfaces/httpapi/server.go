package httpapi

import (
	"net/http"

	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
	"github.com/riskibarqy/worldcup-insights/internal/platform/metrics"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	m *metrics.Metrics,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, m)
	registerQueryRoutes(mux, handler)

	// metrics sit inside the tracing handler so they see the mux pattern
	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, m.Middleware(recoverPanic(logger, mux)))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, m *metrics.Metrics) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
}

func registerQueryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{code}", handler.GetTeam)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/stats/momentum/{code}", handler.GetMomentum)
	mux.HandleFunc("GET /v1/stats/{facet}/{code}", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/history/{teamA}/{teamB}", handler.GetHistory)
	mux.HandleFunc("GET /v1/predictions/{teamA}/{teamB}", handler.GetPrediction)
}
