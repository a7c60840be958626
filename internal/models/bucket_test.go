package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketWidthFromHours(t *testing.T) {
	t.Parallel()

	for _, hours := range []int{1, 2, 3, 4, 6, 8, 12, 24} {
		width, err := BucketWidthFromHours(hours)
		require.NoError(t, err, "hours=%d", hours)
		assert.Equal(t, time.Duration(hours)*time.Hour, width)
	}

	for _, hours := range []int{0, -1, 5, 7, 9, 10, 25} {
		_, err := BucketWidthFromHours(hours)
		assert.Error(t, err, "hours=%d", hours)
	}
}

func TestDayOf_UsesUTC(t *testing.T) {
	t.Parallel()

	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2026, 8, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2026-08-02", DayOf(ts))
}

func TestBucketIndex(t *testing.T) {
	t.Parallel()

	width := 2 * time.Hour
	assert.Equal(t, 0, BucketIndex(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), width))
	assert.Equal(t, 0, BucketIndex(time.Date(2026, 8, 1, 1, 59, 59, 0, time.UTC), width))
	assert.Equal(t, 1, BucketIndex(time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC), width))
	assert.Equal(t, 11, BucketIndex(time.Date(2026, 8, 1, 23, 59, 59, 0, time.UTC), width))
}

func TestBucketsPerDay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12, BucketsPerDay(2*time.Hour))
	assert.Equal(t, 24, BucketsPerDay(time.Hour))
	assert.Equal(t, 1, BucketsPerDay(24*time.Hour))
}
