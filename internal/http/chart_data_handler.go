package http

import (
	"net/http"
	"time"

	"mapstats/internal/engine"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type chartDataHandler struct {
	chartService engine.ChartService
}

func NewChartDataHandler(chartService engine.ChartService) AppHttpHandler {
	return &chartDataHandler{
		chartService: chartService,
	}
}

// Handle processes GET /api/data requests.
func (h *chartDataHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	query := parseChartQuery(r, time.Now().UTC())

	data, svcErr := h.chartService.ChartData(r.Context(), query)
	if svcErr != nil {
		return svcErr
	}

	return writeJSON(w, http.StatusOK, data)
}
