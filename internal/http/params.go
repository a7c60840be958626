package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mapstats/internal/models"
)

// parseChartQuery reads chart parameters from the URL query and normalizes
// them. Unparseable values fall back to defaults rather than erroring: the
// endpoint powers a public dashboard and a garbled slider value should
// degrade, not break the page.
func parseChartQuery(r *http.Request, now time.Time) models.ChartQuery {
	values := r.URL.Query()

	query := models.ChartQuery{
		StartDate:            strings.TrimSpace(values.Get("start_date")),
		DaysToShow:           intParam(firstParam(values, "days_to_show", "days"), 0),
		MapsToShow:           intParam(firstParam(values, "maps_to_show", "maps"), 0),
		TopServers:           intParam(values.Get("top_servers"), 0),
		BiasExponent:         floatParam(firstParam(values, "bias_exponent", "bias"), 0),
		OnlyMapsContaining:   listParam(firstParam(values, "only_maps_containing", "only_contains")),
		AppendMapsContaining: listParam(firstParam(values, "append_maps_containing", "append_contains")),
		ServerFilter:         strings.TrimSpace(firstParam(values, "server_filter", "server")),
	}
	if raw := strings.TrimSpace(values.Get("precision")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.Precision = v
			query.PrecisionSet = true
		}
	}
	query.Normalize(now)
	return query
}

// firstParam returns the first non-empty value among the given parameter
// names. Short-form names are kept as aliases for older dashboard links.
func firstParam(values url.Values, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(values.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

func intParam(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func floatParam(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// listParam splits a comma-separated value, dropping empty entries.
func listParam(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
