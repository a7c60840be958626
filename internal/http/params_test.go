package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mapstats/internal/models"

	"github.com/stretchr/testify/assert"
)

var paramsNow = time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

func TestParseChartQuery_Defaults(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, models.DefaultDaysToShow, query.DaysToShow)
	assert.Equal(t, models.DefaultMapsToShow, query.MapsToShow)
	assert.Equal(t, models.DefaultTopServers, query.TopServers)
	assert.Equal(t, models.DefaultPrecision, query.Precision)
	assert.Equal(t, models.DefaultBiasExponent, query.BiasExponent)
	assert.Equal(t, models.ServerFilterAll, query.ServerFilter)
	// Default window is the last 7 days ending today.
	assert.Equal(t, "2026-08-04", query.StartDate)
}

func TestParseChartQuery_AllNamedParameters(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet,
		"/api/data?days_to_show=30&maps_to_show=3&bias_exponent=2.5"+
			"&only_maps_containing=cp_&append_maps_containing=pl_"+
			"&server_filter=1.2.3.4:27015", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, 30, query.DaysToShow)
	assert.Equal(t, 3, query.MapsToShow)
	assert.Equal(t, 2.5, query.BiasExponent)
	assert.Equal(t, []string{"cp_"}, query.OnlyMapsContaining)
	assert.Equal(t, []string{"pl_"}, query.AppendMapsContaining)
	assert.Equal(t, "1.2.3.4:27015", query.ServerFilter)
}

func TestParseChartQuery_ShortFormAliases(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet,
		"/api/data?days=14&maps=5&bias=1.5&only_contains=ctf_&append_contains=vsh_&server=1.2.3.4:27015", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, 14, query.DaysToShow)
	assert.Equal(t, 5, query.MapsToShow)
	assert.Equal(t, 1.5, query.BiasExponent)
	assert.Equal(t, []string{"ctf_"}, query.OnlyMapsContaining)
	assert.Equal(t, []string{"vsh_"}, query.AppendMapsContaining)
	assert.Equal(t, "1.2.3.4:27015", query.ServerFilter)
}

func TestParseChartQuery_LongFormWinsOverAlias(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/data?days_to_show=30&days=14", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, 30, query.DaysToShow)
}

func TestParseChartQuery_ClampsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet,
		"/api/data?days_to_show=9999&maps_to_show=0&top_servers=-3&precision=42&bias_exponent=100", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, models.MaxDaysToShow, query.DaysToShow)
	assert.Equal(t, models.DefaultMapsToShow, query.MapsToShow)
	assert.Equal(t, 1, query.TopServers)
	assert.Equal(t, models.DefaultPrecision, query.Precision)
	assert.Equal(t, models.MaxBiasExponent, query.BiasExponent)
}

func TestParseChartQuery_GarbageFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet,
		"/api/data?days_to_show=banana&bias_exponent=not-a-float&precision=x", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, models.DefaultDaysToShow, query.DaysToShow)
	assert.Equal(t, models.DefaultBiasExponent, query.BiasExponent)
	assert.Equal(t, models.DefaultPrecision, query.Precision)
}

func TestParseChartQuery_ExplicitZeroPrecision(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/data?precision=0", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, 0, query.Precision)
}

func TestParseChartQuery_CommaSeparatedLists(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet,
		"/api/data?only_maps_containing=ctf_,pl_,%20%20&append_maps_containing=vsh_", nil)
	query := parseChartQuery(req, paramsNow)

	assert.Equal(t, []string{"ctf_", "pl_"}, query.OnlyMapsContaining)
	assert.Equal(t, []string{"vsh_"}, query.AppendMapsContaining)
}
