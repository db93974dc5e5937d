package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yusufkecer/calorist-backend/internal/i18n"
	"github.com/yusufkecer/calorist-backend/internal/logger"
	"github.com/yusufkecer/calorist-backend/internal/middleware"
	"github.com/yusufkecer/calorist-backend/internal/service"
)

const maxBodyBytes = 1 << 20

type RouterOptions struct {
	Log            *logger.Logger
	Metrics        *middleware.Metrics
	Gatherer       prometheus.Gatherer
	APIKey         string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins string
	Language       i18n.Language
	RequestTimeout time.Duration
	TrustProxy     bool

	Profile  *service.ProfileService
	Progress *service.ProgressService
	Tracking *service.TrackingService
}

func NewRouter(opts RouterOptions) *mux.Router {
	authHandler := NewAuthHandler(opts.JWTSecret, opts.TokenTTL, opts.Log)
	userHandler := NewUserHandler(opts.Profile, opts.Language)
	metricHandler := NewMetricHandler(opts.Progress, opts.Language)
	trackingHandler := NewTrackingHandler(opts.Tracking)

	tokenRL := middleware.NewRateLimiter(10, time.Minute, opts.TrustProxy)

	r := mux.NewRouter()

	// Global middleware: CORS → Security Headers → MaxBytesReader → Observe
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Observe(opts.Log, opts.Metrics))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet, http.MethodOptions)

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKeyMiddleware(opts.APIKey))

	api.Handle("/auth/token", tokenRL.Middleware(http.HandlerFunc(authHandler.Token))).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(opts.JWTSecret))

	protected.HandleFunc("/profile", userHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/profile", userHandler.Setup).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/profile", userHandler.Update).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/profile", userHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	protected.HandleFunc("/dashboard", userHandler.Dashboard).Methods(http.MethodGet, http.MethodOptions)

	protected.HandleFunc("/measurements", metricHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/measurements", metricHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/measurements/{id}", metricHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	protected.HandleFunc("/progress", metricHandler.Progress).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/calculate", metricHandler.Calculate).Methods(http.MethodPost, http.MethodOptions)

	protected.HandleFunc("/tracking/goals", trackingHandler.Goals).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/tracking/goals", trackingHandler.SaveGoals).Methods(http.MethodPut, http.MethodOptions)
	protected.HandleFunc("/tracking/week", trackingHandler.Week).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/tracking/month", trackingHandler.Month).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/tracking/{date:[0-9]{4}-[0-9]{2}-[0-9]{2}}", trackingHandler.Day).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/tracking/{date:[0-9]{4}-[0-9]{2}-[0-9]{2}}", trackingHandler.SaveDay).Methods(http.MethodPut, http.MethodOptions)

	return r
}
