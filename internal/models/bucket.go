package models

import (
	"fmt"
	"time"
)

// DayFormat is the canonical day key layout used across stores and payloads.
const DayFormat = "2006-01-02"

// DefaultBucketWidth is the canonical sub-day bucket width.
const DefaultBucketWidth = 2 * time.Hour

// BucketWidthFromHours converts a configured hour count into a bucket width.
// The width must evenly divide a day so a bucket never straddles a day
// boundary.
func BucketWidthFromHours(hours int) (time.Duration, error) {
	if hours < 1 || hours > 24 || 24%hours != 0 {
		return 0, fmt.Errorf("bucket width must evenly divide 24 hours, got %d", hours)
	}
	return time.Duration(hours) * time.Hour, nil
}

// DayOf returns the UTC day key an instant belongs to.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// BucketIndex returns the index of the sub-day bucket containing t, counted
// from the start of t's UTC day. A bucket belongs entirely to the day of its
// start instant.
func BucketIndex(t time.Time, width time.Duration) int {
	utc := t.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return int(utc.Sub(midnight) / width)
}

// BucketsPerDay returns how many buckets of the given width fit in a day.
func BucketsPerDay(width time.Duration) int {
	return int(24 * time.Hour / width)
}
