package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gateway/internal/platform/middleware"
	"gateway/pkg/platform/httputil"
)

// RouterOptions carries the pipeline configuration the router needs beyond
// the handler's own dependencies.
type RouterOptions struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	// HSTS enables transport-security headers; off in development.
	HSTS bool
}

// NewRouter wires the request pipeline. Stage order is fixed: proxy trust,
// request identity/logging, hardening and CORS on everything; session
// parsing, parameter-pollution guard, body limits and compression on the
// API surface only (the websocket endpoint must not be wrapped in a
// compressing response writer). The terminal stage owns every error body.
func NewRouter(h *Handler, realtime http.Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(h.deps.Log))
	r.Use(middleware.Recover(h.deps.Log))
	r.Use(middleware.SecureHeaders(opts.HSTS))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/gateway-health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/ws", realtime)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(h.deps.Sessions, h.deps.Log))
		r.Use(middleware.StripParamPollution)
		r.Use(middleware.BodyLimit(opts.MaxBodyBytes))
		r.Use(chimiddleware.Compress(5))

		r.Route("/api/gateway/v1", func(r chi.Router) {
			h.authRoutes(r)
			h.presenceRoutes(r)
			h.buyerRoutes(r)
			h.sellerRoutes(r)
			h.gigRoutes(r)
			h.messageRoutes(r)
			h.orderRoutes(r)
		})
	})

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.notFound)
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("API Gateway service is healthy and OK."))
}

// notFound is the terminal stage for unmatched routes. The message is part
// of the public contract.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.deps.Log.WarnContext(r.Context(), "endpoint does not exist",
		"method", r.Method, "path", r.URL.Path)
	httputil.WriteJSON(w, http.StatusNotFound,
		map[string]string{"message": "The endpoint called does not exist"})
}
