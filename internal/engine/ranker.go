package engine

import (
	"math"
	"sort"
)

// RankedEntity is one map or server scored across the window.
type RankedEntity struct {
	Label string

	// Total is the unweighted sum of day totals over days with data. It is
	// the ranking key: consistent presence across the window beats a single
	// well-sampled spike of equal peak.
	Total float64

	// Weighted is the bias-weighted mean of day totals, where a day's weight
	// is its cycle count raised to the bias exponent. It feeds summary
	// numbers only, never ranking order.
	Weighted float64
}

// Ranker combines per-day totals into cross-day scores and orders entities.
type Ranker struct {
	biasExponent float64
}

func NewRanker(biasExponent float64) *Ranker {
	if biasExponent <= 0 {
		biasExponent = 1.0
	}
	return &Ranker{biasExponent: biasExponent}
}

// RankMaps scores every map over the window. Order: total contribution
// descending, ties broken by label ascending for determinism.
func (r *Ranker) RankMaps(days []*DayStats) []RankedEntity {
	return r.rank(days, func(stats *DayStats) map[string]float64 { return stats.MapTotals })
}

// RankServers scores every server over the window, same ordering rule.
func (r *Ranker) RankServers(days []*DayStats) []RankedEntity {
	return r.rank(days, func(stats *DayStats) map[string]float64 { return stats.ServerTotals })
}

// WeightedDailyAverage is the bias-weighted mean of the days' total player
// contributions. With exponent 1.0 every day with data weighs the same;
// higher exponents favor densely sampled days.
func (r *Ranker) WeightedDailyAverage(days []*DayStats) float64 {
	weightSum := 0.0
	weightedTotal := 0.0
	for _, stats := range days {
		w := r.dayWeight(stats)
		weightSum += w
		weightedTotal += stats.Total * w
	}
	if weightSum == 0 {
		return 0
	}
	return weightedTotal / weightSum
}

func (r *Ranker) rank(days []*DayStats, totals func(*DayStats) map[string]float64) []RankedEntity {
	weightSum := 0.0
	for _, stats := range days {
		weightSum += r.dayWeight(stats)
	}

	sums := make(map[string]float64)
	weighted := make(map[string]float64)
	for _, stats := range days {
		w := r.dayWeight(stats)
		for label, total := range totals(stats) {
			sums[label] += total
			weighted[label] += total * w
		}
	}

	entities := make([]RankedEntity, 0, len(sums))
	for label, total := range sums {
		entity := RankedEntity{Label: label, Total: total}
		if weightSum > 0 {
			entity.Weighted = weighted[label] / weightSum
		}
		entities = append(entities, entity)
	}

	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Total != entities[j].Total {
			return entities[i].Total > entities[j].Total
		}
		return entities[i].Label < entities[j].Label
	})

	return entities
}

func (r *Ranker) dayWeight(stats *DayStats) float64 {
	return math.Pow(float64(stats.CycleCount), r.biasExponent)
}
