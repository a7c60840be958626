package models

import (
	"fmt"
	"strings"
	"time"
)

// ServerFilterAll disables per-server restriction.
const ServerFilterAll = "ALL"

// Default and clamp bounds for chart query parameters. Callers may pass
// anything; Normalize brings the query into these ranges before it reaches
// the engine.
const (
	DefaultDaysToShow   = 7
	DefaultMapsToShow   = 10
	DefaultTopServers   = 10
	DefaultPrecision    = 2
	DefaultBiasExponent = 1.2

	MaxDaysToShow = 365
	MaxMapsToShow = 50
	MaxTopServers = 50
	MaxPrecision  = 6

	MinBiasExponent = 0.1
	MaxBiasExponent = 8.0
)

// ChartQuery carries the validated, defaulted parameters of one chart
// request. The engine treats it as read-only.
type ChartQuery struct {
	StartDate            string // YYYY-MM-DD, inclusive
	DaysToShow           int
	MapsToShow           int
	TopServers           int
	Precision            int
	PrecisionSet         bool // distinguishes an explicit precision 0 from unset
	BiasExponent         float64
	OnlyMapsContaining   []string
	AppendMapsContaining []string
	ServerFilter         string // ServerFilterAll or a server id
}

// Normalize clamps numeric fields into their allowed ranges and fills in
// defaults. The default start date shows the last DaysToShow days ending at
// now, not starting at it.
func (q *ChartQuery) Normalize(now time.Time) {
	q.DaysToShow = clampInt(q.DaysToShow, 1, MaxDaysToShow, DefaultDaysToShow)
	q.MapsToShow = clampInt(q.MapsToShow, 1, MaxMapsToShow, DefaultMapsToShow)
	q.TopServers = clampInt(q.TopServers, 1, MaxTopServers, DefaultTopServers)
	if q.Precision == 0 && !q.PrecisionSet {
		q.Precision = DefaultPrecision
	} else if q.Precision < 0 || q.Precision > MaxPrecision {
		q.Precision = DefaultPrecision
	}
	q.PrecisionSet = true
	if q.BiasExponent == 0 {
		q.BiasExponent = DefaultBiasExponent
	}
	if q.BiasExponent < MinBiasExponent {
		q.BiasExponent = MinBiasExponent
	}
	if q.BiasExponent > MaxBiasExponent {
		q.BiasExponent = MaxBiasExponent
	}
	if q.StartDate == "" {
		q.StartDate = now.UTC().AddDate(0, 0, -(q.DaysToShow - 1)).Format(DayFormat)
	}
	if strings.TrimSpace(q.ServerFilter) == "" {
		q.ServerFilter = ServerFilterAll
	}
}

// Window resolves the query to a half-open [start, end) UTC window.
func (q ChartQuery) Window() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DayFormat, q.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", q.StartDate, err)
	}
	return start, start.AddDate(0, 0, q.DaysToShow), nil
}

// Key returns a deterministic cache key for the normalized query.
func (q ChartQuery) Key() string {
	return fmt.Sprintf("%s|%d|%d|%d|%d|%g|%s|%s|%s",
		q.StartDate,
		q.DaysToShow,
		q.MapsToShow,
		q.TopServers,
		q.Precision,
		q.BiasExponent,
		strings.Join(q.OnlyMapsContaining, ","),
		strings.Join(q.AppendMapsContaining, ","),
		q.ServerFilter,
	)
}

func clampInt(v, min, max, def int) int {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
