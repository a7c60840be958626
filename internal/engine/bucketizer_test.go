package engine

import (
	"testing"
	"time"

	"mapstats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(cycleID, serverID, mapName string, players int, ts time.Time) models.Observation {
	return models.Observation{
		CycleID:   cycleID,
		ServerID:  serverID,
		MapName:   mapName,
		Players:   players,
		Timestamp: ts,
	}
}

func TestBucketize_NormalizesByDistinctCycleCount(t *testing.T) {
	t.Parallel()

	bucketizer := NewBucketizer(2 * time.Hour)
	day := "2026-08-01"
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	// Two cycles land in bucket 5 (10:00-12:00). The map appears in both
	// cycles on one server, and in only one cycle on another.
	observations := []models.Observation{
		obs("c1", "1.2.3.4:27015", "ctf_2fort", 20, t0),
		obs("c2", "1.2.3.4:27015", "ctf_2fort", 10, t1),
		obs("c1", "5.6.7.8:27015", "pl_upward", 30, t0),
	}

	buckets := bucketizer.Bucketize(day, observations, nil)
	require.Len(t, buckets, 1)

	bucket := buckets[0]
	assert.Equal(t, 5, bucket.Index)
	assert.Len(t, bucket.Cycles, 2)
	// (20+10)/2 for the map present in both cycles
	assert.InDelta(t, 15.0, bucket.Maps["ctf_2fort"], 1e-9)
	// 30/2 for the map present in only one of the bucket's two cycles
	assert.InDelta(t, 15.0, bucket.Maps["pl_upward"], 1e-9)
	assert.InDelta(t, 15.0, bucket.Servers["1.2.3.4:27015"], 1e-9)
	assert.InDelta(t, 15.0, bucket.Servers["5.6.7.8:27015"], 1e-9)
}

func TestBucketize_SingleCycleBucketKeepsRawSums(t *testing.T) {
	t.Parallel()

	bucketizer := NewBucketizer(2 * time.Hour)
	ts := time.Date(2026, 8, 1, 0, 15, 0, 0, time.UTC)

	buckets := bucketizer.Bucketize("2026-08-01", []models.Observation{
		obs("c1", "1.2.3.4:27015", "ctf_2fort", 24, ts),
	}, nil)

	require.Len(t, buckets, 1)
	assert.Equal(t, 0, buckets[0].Index)
	assert.InDelta(t, 24.0, buckets[0].Maps["ctf_2fort"], 1e-9)
}

func TestBucketize_EmptyBucketsAbsentNotZero(t *testing.T) {
	t.Parallel()

	bucketizer := NewBucketizer(2 * time.Hour)

	// Observations only in buckets 0 and 11; nothing in between.
	buckets := bucketizer.Bucketize("2026-08-01", []models.Observation{
		obs("c1", "1.2.3.4:27015", "ctf_2fort", 5, time.Date(2026, 8, 1, 1, 0, 0, 0, time.UTC)),
		obs("c2", "1.2.3.4:27015", "ctf_2fort", 7, time.Date(2026, 8, 1, 23, 0, 0, 0, time.UTC)),
	}, nil)

	require.Len(t, buckets, 2)
	assert.Equal(t, 0, buckets[0].Index)
	assert.Equal(t, 11, buckets[1].Index)
}

func TestBucketize_FilteredObservationsStillCountCycles(t *testing.T) {
	t.Parallel()

	bucketizer := NewBucketizer(2 * time.Hour)
	ts := time.Date(2026, 8, 1, 4, 0, 0, 0, time.UTC)

	match := func(o models.Observation) bool { return o.MapName == "ctf_2fort" }

	buckets := bucketizer.Bucketize("2026-08-01", []models.Observation{
		obs("c1", "1.2.3.4:27015", "ctf_2fort", 10, ts),
		obs("c2", "5.6.7.8:27015", "pl_upward", 99, ts.Add(10*time.Minute)),
	}, match)

	require.Len(t, buckets, 1)
	// The filtered-out observation's cycle still sits in the denominator.
	assert.InDelta(t, 5.0, buckets[0].Maps["ctf_2fort"], 1e-9)
	_, hasFiltered := buckets[0].Maps["pl_upward"]
	assert.False(t, hasFiltered)
}

func TestBucketize_NoMatchingObservations_NoBuckets(t *testing.T) {
	t.Parallel()

	bucketizer := NewBucketizer(2 * time.Hour)
	ts := time.Date(2026, 8, 1, 4, 0, 0, 0, time.UTC)

	match := func(o models.Observation) bool { return false }

	buckets := bucketizer.Bucketize("2026-08-01", []models.Observation{
		obs("c1", "1.2.3.4:27015", "ctf_2fort", 10, ts),
	}, match)

	assert.Empty(t, buckets)
}

func TestBucketize_OutputSortedByIndex(t *testing.T) {
	t.Parallel()

	bucketizer := NewBucketizer(2 * time.Hour)

	buckets := bucketizer.Bucketize("2026-08-01", []models.Observation{
		obs("c3", "1.2.3.4:27015", "ctf_2fort", 1, time.Date(2026, 8, 1, 22, 0, 0, 0, time.UTC)),
		obs("c1", "1.2.3.4:27015", "ctf_2fort", 1, time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC)),
		obs("c2", "1.2.3.4:27015", "ctf_2fort", 1, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)),
	}, nil)

	require.Len(t, buckets, 3)
	assert.Equal(t, []int{1, 6, 11}, []int{buckets[0].Index, buckets[1].Index, buckets[2].Index})
}
