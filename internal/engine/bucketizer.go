package engine

import (
	"sort"
	"time"

	"mapstats/internal/models"
)

// ObservationFilter restricts which observations contribute players. Buckets
// still count every cycle they saw — an entity that is filtered out or
// simply absent from some of a bucket's cycles is averaged against all of
// them, which is what keeps uneven sampling from inflating its numbers.
type ObservationFilter func(obs models.Observation) bool

// BucketContributions holds one present bucket's normalized output: for each
// entity seen in the bucket, the sum of its player counts divided by the
// bucket's distinct scan-cycle count.
type BucketContributions struct {
	Day    string
	Index  int
	Cycles map[string]struct{} // every cycle observed in the bucket, filtered or not

	Maps    map[string]float64
	Servers map[string]float64
}

// Bucketizer partitions one day's observations into fixed-width sub-day
// buckets and computes intra-bucket normalization. Buckets with no matching
// observations are absent from the output, never zero-valued.
type Bucketizer struct {
	width time.Duration
}

func NewBucketizer(width time.Duration) *Bucketizer {
	if width <= 0 {
		width = models.DefaultBucketWidth
	}
	return &Bucketizer{width: width}
}

type bucketAccum struct {
	cycles  map[string]struct{}
	maps    map[string]int
	servers map[string]int
	matched bool
}

// Bucketize groups observations by bucket index and normalizes each entity's
// player sum by the bucket's distinct cycle count. The match filter decides
// which observations contribute players; all observations contribute their
// cycle ID to the denominator. Output is sorted by bucket index.
func (b *Bucketizer) Bucketize(day string, observations []models.Observation, match ObservationFilter) []BucketContributions {
	accums := make(map[int]*bucketAccum)

	for _, obs := range observations {
		idx := models.BucketIndex(obs.Timestamp, b.width)
		accum, ok := accums[idx]
		if !ok {
			accum = &bucketAccum{
				cycles:  make(map[string]struct{}),
				maps:    make(map[string]int),
				servers: make(map[string]int),
			}
			accums[idx] = accum
		}

		accum.cycles[obs.CycleID] = struct{}{}
		if match != nil && !match(obs) {
			continue
		}
		accum.matched = true
		accum.maps[obs.MapName] += obs.Players
		accum.servers[obs.ServerID] += obs.Players
	}

	indexes := make([]int, 0, len(accums))
	for idx, accum := range accums {
		if accum.matched {
			indexes = append(indexes, idx)
		}
	}
	sort.Ints(indexes)

	contributions := make([]BucketContributions, 0, len(indexes))
	for _, idx := range indexes {
		accum := accums[idx]
		cycleCount := float64(len(accum.cycles))

		contribution := BucketContributions{
			Day:     day,
			Index:   idx,
			Cycles:  accum.cycles,
			Maps:    make(map[string]float64, len(accum.maps)),
			Servers: make(map[string]float64, len(accum.servers)),
		}
		for name, players := range accum.maps {
			contribution.Maps[name] = float64(players) / cycleCount
		}
		for serverID, players := range accum.servers {
			contribution.Servers[serverID] = float64(players) / cycleCount
		}
		contributions = append(contributions, contribution)
	}

	return contributions
}
