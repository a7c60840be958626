package http

import (
	"net/http"

	"mapstats/internal/engine"
)

type dateRangeHandler struct {
	chartService engine.ChartService
}

func NewDateRangeHandler(chartService engine.ChartService) AppHttpHandler {
	return &dateRangeHandler{chartService: chartService}
}

// Handle processes GET /api/date_range requests.
func (h *dateRangeHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	minDay, maxDay, svcErr := h.chartService.DateRange(r.Context())
	if svcErr != nil {
		return svcErr
	}
	return writeJSON(w, http.StatusOK, map[string]string{
		"minDate": minDay,
		"maxDate": maxDay,
	})
}

type freshnessHandler struct {
	chartService engine.ChartService
}

func NewFreshnessHandler(chartService engine.ChartService) AppHttpHandler {
	return &freshnessHandler{chartService: chartService}
}

// Handle processes GET /api/data_freshness requests.
func (h *freshnessHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	latest, svcErr := h.chartService.Freshness(r.Context())
	if svcErr != nil {
		return svcErr
	}
	return writeJSON(w, http.StatusOK, map[string]string{
		"lastUpdate": latest,
	})
}

// healthzHandler answers liveness probes.
func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
