package engine

// DayStats is one day's folded contribution per entity. A day with no
// present buckets has no DayStats at all — absent days never enter a
// denominator downstream.
type DayStats struct {
	Day            string
	MapTotals      map[string]float64
	ServerTotals   map[string]float64
	PresentBuckets int
	CycleCount     int // distinct cycles across the day's present buckets

	// Total is the day's total player contribution summed over all maps.
	Total float64
}

// DayAggregator folds a day's bucket contributions into per-entity day
// totals.
type DayAggregator struct{}

func NewDayAggregator() *DayAggregator {
	return &DayAggregator{}
}

// Fold sums bucket contributions over the day's present buckets. Returns nil
// when the day has no present buckets, which callers must treat as "day
// absent", not "day zero".
func (a *DayAggregator) Fold(day string, buckets []BucketContributions) *DayStats {
	if len(buckets) == 0 {
		return nil
	}

	stats := &DayStats{
		Day:            day,
		MapTotals:      make(map[string]float64),
		ServerTotals:   make(map[string]float64),
		PresentBuckets: len(buckets),
	}

	cycles := make(map[string]struct{})
	for _, bucket := range buckets {
		for cycleID := range bucket.Cycles {
			cycles[cycleID] = struct{}{}
		}
		for name, contribution := range bucket.Maps {
			stats.MapTotals[name] += contribution
			stats.Total += contribution
		}
		for serverID, contribution := range bucket.Servers {
			stats.ServerTotals[serverID] += contribution
		}
	}
	stats.CycleCount = len(cycles)

	return stats
}
