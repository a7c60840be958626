package engine

import (
	"math"
	"strings"

	"mapstats/internal/models"
)

// OtherLabel is the synthetic entity absorbing everything not shown
// individually.
const OtherLabel = "Other"

// Shaper caps rankings to top-N plus forced entries, folds the remainder
// into "Other", and renders day-by-day percentage series normalized to
// exactly 100.00 at the configured precision.
type Shaper struct {
	precision int
}

func NewShaper(precision int) *Shaper {
	if precision < 0 || precision > models.MaxPrecision {
		precision = models.DefaultPrecision
	}
	return &Shaper{precision: precision}
}

// SelectMaps picks the top-N ranked labels plus any entities beyond the
// top-N budget whose label contains one of the force-append substrings.
// Forced entries keep their rank order and are reported separately via the
// appended count.
func (s *Shaper) SelectMaps(ranked []RankedEntity, topN int, appendContaining []string) ([]string, int) {
	if topN > len(ranked) {
		topN = len(ranked)
	}

	shown := make([]string, 0, topN)
	for _, entity := range ranked[:topN] {
		shown = append(shown, entity.Label)
	}

	appended := 0
	if len(appendContaining) > 0 {
		for _, entity := range ranked[topN:] {
			if containsAny(entity.Label, appendContaining) {
				shown = append(shown, entity.Label)
				appended++
			}
		}
	}

	return shown, appended
}

// Datasets renders one percentage series per shown label, day-aligned to the
// days slice, plus an "Other" series when unshown entities exist. Each day's
// shares sum to exactly 100 at the shaper's precision; rounding drift is
// folded into the "Other" series, or the last shown series when "Other" is
// absent. A zero-total day yields all-zero shares.
func (s *Shaper) Datasets(days []*DayStats, shown []string, totalEntities int) []models.Dataset {
	hasOther := totalEntities > len(shown)

	datasets := make([]models.Dataset, 0, len(shown)+1)
	for _, label := range shown {
		datasets = append(datasets, models.Dataset{Label: label, Data: make([]float64, len(days))})
	}
	if hasOther {
		datasets = append(datasets, models.Dataset{Label: OtherLabel, Data: make([]float64, len(days))})
	}
	if len(datasets) == 0 {
		return datasets
	}

	for dayIdx, stats := range days {
		if stats.Total == 0 {
			continue // guarded: all shares stay 0 rather than dividing by zero
		}

		shownSum := 0.0
		for i, label := range shown {
			share := s.round(100 * stats.MapTotals[label] / stats.Total)
			datasets[i].Data[dayIdx] = share
			shownSum += share
		}

		if hasOther {
			other := s.round(100 - shownSum)
			if other < 0 {
				// Rounding pushed the shown shares past 100; keep Other at
				// zero and take the drift out of the last shown series.
				last := len(shown) - 1
				datasets[last].Data[dayIdx] = s.round(datasets[last].Data[dayIdx] + other)
				other = 0
			}
			datasets[len(datasets)-1].Data[dayIdx] = other
		} else {
			last := len(datasets) - 1
			datasets[last].Data[dayIdx] = s.round(datasets[last].Data[dayIdx] + (100 - shownSum))
		}
	}

	return datasets
}

// MapRanking reports each shown label's percentage of the window's total
// contribution, in rank order, with an "Other" entry for the remainder.
func (s *Shaper) MapRanking(ranked []RankedEntity, shown []string) []models.RankingEntry {
	totalSum := 0.0
	for _, entity := range ranked {
		totalSum += entity.Total
	}
	if totalSum == 0 {
		return []models.RankingEntry{}
	}

	shownSet := make(map[string]struct{}, len(shown))
	for _, label := range shown {
		shownSet[label] = struct{}{}
	}

	entries := make([]models.RankingEntry, 0, len(shown)+1)
	otherSum := 0.0
	for _, entity := range ranked {
		if _, ok := shownSet[entity.Label]; ok {
			entries = append(entries, models.RankingEntry{
				Label: entity.Label,
				Pop:   s.round(100 * entity.Total / totalSum),
			})
		} else {
			otherSum += entity.Total
		}
	}
	if otherSum > 0 {
		entries = append(entries, models.RankingEntry{
			Label: OtherLabel,
			Pop:   s.round(100 * otherSum / totalSum),
		})
	}

	return entries
}

// ServerRanking reports the top servers by total contribution as average
// per-day contributions (players, not percentages), dividing only by days
// that have data. Remaining servers fold into an "Other" entry.
func (s *Shaper) ServerRanking(ranked []RankedEntity, topN int, names map[string]string, daysWithData int) []models.ServerRankingEntry {
	if daysWithData < 1 {
		daysWithData = 1
	}
	if topN > len(ranked) {
		topN = len(ranked)
	}

	entries := make([]models.ServerRankingEntry, 0, topN+1)
	for _, entity := range ranked[:topN] {
		label := entity.Label
		if name, ok := names[entity.Label]; ok && name != "" {
			label = name
		}
		entries = append(entries, models.ServerRankingEntry{
			ID:    entity.Label,
			Label: label,
			Pop:   s.round(entity.Total / float64(daysWithData)),
		})
	}

	otherSum := 0.0
	for _, entity := range ranked[topN:] {
		otherSum += entity.Total
	}
	if otherSum > 0 {
		entries = append(entries, models.ServerRankingEntry{
			ID:    OtherLabel,
			Label: OtherLabel,
			Pop:   s.round(otherSum / float64(daysWithData)),
		})
	}

	return entries
}

func (s *Shaper) round(v float64) float64 {
	scale := math.Pow(10, float64(s.precision))
	return math.Round(v*scale) / scale
}

func containsAny(label string, substrings []string) bool {
	lower := strings.ToLower(label)
	for _, sub := range substrings {
		if sub == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
