package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/cookie-table/internal/delivery/http/handler"
	"github.com/user/cookie-table/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.HandleFunc("GET /cookies/{$}", h.HandleAdminPage)
	mux.HandleFunc("POST /cookies/{$}", h.HandleSaveCookie)
	mux.HandleFunc("GET /consent/cookies", h.HandleConsentTable)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
