package http

import (
	"net/http"

	"health-first-server/internal/delivery/http/handler"
	"health-first-server/internal/delivery/http/middleware"
	"health-first-server/pkg/metrics"
	"health-first-server/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	providerHandler    *handler.ProviderHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggerMiddleware   *middleware.LoggerMiddleware
	recoveryMiddleware *middleware.RecoveryMiddleware
	metricsMiddleware  *middleware.MetricsMiddleware
	metrics            *metrics.Metrics
}

func NewRouter(
	providerHandler *handler.ProviderHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	metrics *metrics.Metrics,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		providerHandler:    providerHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loggerMiddleware:   loggerMiddleware,
		recoveryMiddleware: recoveryMiddleware,
		metricsMiddleware:  metricsMiddleware,
		metrics:            metrics,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// Provider routes (public)
	provider := api.PathPrefix("/provider").Subrouter()
	provider.HandleFunc("/register", r.providerHandler.Register).Methods(http.MethodPost)
	provider.HandleFunc("/login", r.providerHandler.Login).Methods(http.MethodPost)

	// Provider routes (protected)
	providerProtected := api.PathPrefix("/provider").Subrouter()
	providerProtected.Use(middleware.RequireAuthentication)
	providerProtected.HandleFunc("/me", r.providerHandler.Me).Methods(http.MethodGet)

	// Outermost first; Authenticate runs on every route and never rejects.
	r.router.Use(r.recoveryMiddleware.Handle)
	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.authMiddleware.Authenticate)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
