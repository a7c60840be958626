package http

import (
	"net/http"
	"time"

	"mapstats/internal/engine"
	"mapstats/internal/shared/configs"
	"mapstats/internal/shared/loggers"
	"mapstats/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// RouterOptions bundle the router's cross-cutting configuration.
type RouterOptions struct {
	RateLimit configs.RateLimitConfig
	AdminIPs  []string
	StopCh    <-chan struct{} // stops the rate limiter sweeper
}

// NewRouter creates and configures the HTTP router.
func NewRouter(chartService engine.ChartService, opts RouterOptions, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	limiter := newRateLimiter(opts.RateLimit.MaxRequests, time.Duration(opts.RateLimit.Window)*time.Second)
	limiter.startSweeper(opts.StopCh)
	tracker := newRequestTracker()

	// Initialize handlers
	chartDataHandler := NewChartDataHandler(chartService)
	dateRangeHandler := NewDateRangeHandler(chartService)
	freshnessHandler := NewFreshnessHandler(chartService)
	adminStatsHandler := NewAdminStatsHandler(tracker)

	// Routes
	router.Route("/api", func(api chi.Router) {
		api.Use(mwRateLimit(limiter))
		api.Use(mwTrackRequests(tracker))

		api.Get("/data", errorHandlingAdapter(chartDataHandler))
		api.Get("/date_range", errorHandlingAdapter(dateRangeHandler))
		api.Get("/data_freshness", errorHandlingAdapter(freshnessHandler))

		// Admin routes answer 404 unless the caller IP is allowlisted. An
		// empty allowlist disables them entirely.
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(mwAdminOnly(opts.AdminIPs))
			admin.Get("/requests", errorHandlingAdapter(adminStatsHandler))
		})
	})

	router.Get("/healthz", healthzHandler)
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
