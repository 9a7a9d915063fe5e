package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warranty/internal/observability"
)

type Server struct {
	Mux *mux.Router
	// V1 carries the Mini App routes and their middleware.
	V1 *mux.Router
}

func New() *Server {
	m := mux.NewRouter()
	m.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return &Server{Mux: m, V1: m.PathPrefix("/v1").Subrouter()}
}

// Mount registers the Mini App routes behind metrics, bearer passthrough and
// init data verification.
func (s *Server) Mount(api *API, auth *InitData) {
	s.V1.Use(Metrics(observability.APIRequests), Bearer, auth.Middleware)
	api.Register(s.V1)
}

// Handler wraps the router with request ids and access logging.
func (s *Server) Handler() http.Handler {
	return RequestID(Logging(s.Mux))
}
