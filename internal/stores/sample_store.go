package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"mapstats/internal/models"
	"mapstats/internal/shared/filestorages"
)

var (
	ErrCycleAlreadyExists = errors.New("scan cycle already exists")
)

// SampleStore is the append-only observation log. Each scan cycle is
// published as a single file via an atomic create-if-not-exists, so a
// concurrent reader either sees the whole cycle or none of it — the
// visibility guarantee the query engine relies on while the collector keeps
// appending.
//
//go:generate mockgen -source=sample_store.go -destination=./mocks/sample_store_mock.go -package=mocks
type SampleStore interface {
	// AppendCycle durably writes one scan cycle. A duplicate cycle ID
	// returns ErrCycleAlreadyExists.
	AppendCycle(ctx context.Context, cycle *models.ScanCycle) error

	// ReadDays streams the observations of every day in [start, end) in
	// ascending day order, one callback per day that has data. Days without
	// observations produce no callback. Returning an error from fn stops
	// the scan and propagates the error.
	ReadDays(ctx context.Context, start, end time.Time, fn func(day string, observations []models.Observation) error) error

	// DateRange returns the earliest and latest day keys with data, or two
	// empty strings when the store is empty.
	DateRange(ctx context.Context) (string, string, error)

	// Freshness returns an opaque token that changes whenever a cycle is
	// appended, plus the timestamp of the latest cycle. An empty token means
	// no data.
	Freshness(ctx context.Context) (string, time.Time, error)

	// RecentServers returns the distinct server IDs observed on or after
	// since, for re-scan list seeding.
	RecentServers(ctx context.Context, since time.Time) ([]string, error)
}

type sampleStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewSampleStore(fileStorage filestorages.FileStorage) SampleStore {
	return &sampleStore{fileStorage: fileStorage, dir: "samples"}
}

func (s *sampleStore) AppendCycle(ctx context.Context, cycle *models.ScanCycle) error {
	jsonData, err := json.Marshal(cycle)
	if err != nil {
		return fmt.Errorf("failed to marshal scan cycle: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.json", s.dir, models.DayOf(cycle.Timestamp), cycle.CycleID)

	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrCycleAlreadyExists
		}
		return fmt.Errorf("failed to put scan cycle: %w", err)
	}
	return nil
}

func (s *sampleStore) ReadDays(ctx context.Context, start, end time.Time, fn func(day string, observations []models.Observation) error) error {
	if !start.Before(end) {
		return nil
	}
	days, err := s.listDays(ctx)
	if err != nil {
		return err
	}

	startDay := models.DayOf(start)
	endDay := models.DayOf(end) // exclusive: end is a day boundary

	for _, day := range days {
		if day < startDay || day >= endDay {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		observations, err := s.readDay(ctx, day)
		if err != nil {
			return err
		}
		if len(observations) == 0 {
			continue
		}
		if err := fn(day, observations); err != nil {
			return err
		}
	}
	return nil
}

func (s *sampleStore) DateRange(ctx context.Context) (string, string, error) {
	days, err := s.listDays(ctx)
	if err != nil {
		return "", "", err
	}
	if len(days) == 0 {
		return "", "", nil
	}
	return days[0], days[len(days)-1], nil
}

func (s *sampleStore) Freshness(ctx context.Context) (string, time.Time, error) {
	days, err := s.listDays(ctx)
	if err != nil {
		return "", time.Time{}, err
	}
	// Walk backwards: the newest day dir can exist with only in-flight
	// writes, in which case the previous day holds the latest cycle.
	for i := len(days) - 1; i >= 0; i-- {
		keys, err := s.fileStorage.List(ctx, path.Join(s.dir, days[i]))
		if err != nil {
			return "", time.Time{}, err
		}
		if len(keys) == 0 {
			continue
		}
		latest := keys[len(keys)-1]
		cycle, err := s.readCycle(ctx, latest)
		if err != nil {
			return "", time.Time{}, err
		}
		return cycle.CycleID, cycle.Timestamp, nil
	}
	return "", time.Time{}, nil
}

func (s *sampleStore) RecentServers(ctx context.Context, since time.Time) ([]string, error) {
	days, err := s.listDays(ctx)
	if err != nil {
		return nil, err
	}
	sinceDay := models.DayOf(since)

	seen := make(map[string]struct{})
	var servers []string
	for _, day := range days {
		if day < sinceDay {
			continue
		}
		observations, err := s.readDay(ctx, day)
		if err != nil {
			return nil, err
		}
		for _, obs := range observations {
			if _, ok := seen[obs.ServerID]; ok {
				continue
			}
			seen[obs.ServerID] = struct{}{}
			servers = append(servers, obs.ServerID)
		}
	}
	return servers, nil
}

// listDays returns the day keys present in the store, ascending. Day keys
// use models.DayFormat so lexicographic order is chronological order.
func (s *sampleStore) listDays(ctx context.Context) ([]string, error) {
	keys, err := s.fileStorage.List(ctx, s.dir)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, len(keys))
	for _, key := range keys {
		days = append(days, path.Base(key))
	}
	return days, nil
}

func (s *sampleStore) readDay(ctx context.Context, day string) ([]models.Observation, error) {
	keys, err := s.fileStorage.List(ctx, path.Join(s.dir, day))
	if err != nil {
		return nil, err
	}

	var observations []models.Observation
	for _, key := range keys {
		cycle, err := s.readCycle(ctx, key)
		if err != nil {
			return nil, err
		}
		observations = append(observations, cycle.Observations...)
	}
	return observations, nil
}

func (s *sampleStore) readCycle(ctx context.Context, key string) (*models.ScanCycle, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan cycle %s: %w", key, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan cycle %s: %w", key, err)
	}
	var cycle models.ScanCycle
	if err := json.Unmarshal(data, &cycle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scan cycle %s: %w", key, err)
	}
	return &cycle, nil
}
