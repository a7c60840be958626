package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"mapstats/internal/models"
	"mapstats/internal/shared/loggers"
	"mapstats/internal/shared/metrics"
	"mapstats/internal/shared/svcerrors"
	"mapstats/internal/stores"
)

// FreshnessTimeFormat is the layout of the latest-scan timestamp exposed to
// the API layer.
const FreshnessTimeFormat = "2006-01-02 15:04:05"

// ChartService answers chart queries as a pure function of the sample
// store's current contents and the query parameters. It owns no mutable
// state beyond a result cache, so any number of queries can run concurrently
// with each other and with ongoing ingestion.
//
//go:generate mockgen -source=engine.go -destination=./mocks/chart_service_mock.go -package=mocks
type ChartService interface {
	// ChartData computes the full payload for one normalized query. A window
	// with no observations yields the explicit empty payload and no error.
	ChartData(ctx context.Context, query models.ChartQuery) (*models.ChartData, *svcerrors.ServiceError)

	// DateRange returns the earliest and latest day keys with data, or empty
	// strings when the store is empty.
	DateRange(ctx context.Context) (string, string, *svcerrors.ServiceError)

	// Freshness returns the timestamp of the latest scan cycle, formatted
	// with FreshnessTimeFormat, or "" when the store is empty.
	Freshness(ctx context.Context) (string, *svcerrors.ServiceError)
}

// Options tune the engine; zero values fall back to defaults.
type Options struct {
	BucketWidth  time.Duration
	QueryTimeout time.Duration
	CacheSize    int
	CacheTTL     time.Duration
}

type chartService struct {
	sampleStore stores.SampleStore
	nameStore   stores.ServerNameStore

	bucketizer   *Bucketizer
	aggregator   *DayAggregator
	queryTimeout time.Duration
	cache        *queryCache
}

func NewChartService(sampleStore stores.SampleStore, nameStore stores.ServerNameStore, opts Options) ChartService {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 30 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &chartService{
		sampleStore:  sampleStore,
		nameStore:    nameStore,
		bucketizer:   NewBucketizer(opts.BucketWidth),
		aggregator:   NewDayAggregator(),
		queryTimeout: opts.QueryTimeout,
		cache:        newQueryCache(opts.CacheSize, opts.CacheTTL),
	}
}

func (s *chartService) ChartData(ctx context.Context, query models.ChartQuery) (*models.ChartData, *svcerrors.ServiceError) {
	started := time.Now()
	data, svcErr := s.chartData(ctx, query)

	errorCode := metrics.ValueNoError
	if svcErr != nil {
		errorCode = svcErr.Code
	}
	metricQueriesTotal.WithLabelValues(errorCode).Inc()
	metricQueryDuration.WithLabelValues(errorCode).Observe(time.Since(started).Seconds())

	return data, svcErr
}

func (s *chartService) chartData(ctx context.Context, query models.ChartQuery) (*models.ChartData, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)

	start, end, err := query.Window()
	if err != nil {
		return nil, errInvalidWindow("invalid query window", err)
	}
	if !start.Before(end) {
		return nil, errInvalidWindow("start date is not before end date", nil)
	}

	freshToken, _, err := s.sampleStore.Freshness(ctx)
	if err != nil {
		return nil, errStoreUnavailable(err)
	}

	cacheKey := freshToken + "|" + query.Key()
	if cached, ok := s.cache.Get(cacheKey); ok {
		metricQueryCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metricQueryCacheTotal.WithLabelValues("miss").Inc()

	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	// Single bounded streaming pass: raw observations are folded into bucket
	// contributions day by day and discarded, so memory stays proportional
	// to buckets and entities, not raw rows. The context is checked between
	// day groups for the cooperative cancellation contract.
	match := buildFilter(query)
	var days []*DayStats
	err = s.sampleStore.ReadDays(queryCtx, start, end, func(day string, observations []models.Observation) error {
		buckets := s.bucketizer.Bucketize(day, observations, match)
		if stats := s.aggregator.Fold(day, buckets); stats != nil {
			days = append(days, stats)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, errQueryTimeout(err)
		}
		return nil, errStoreUnavailable(err)
	}

	if len(days) == 0 {
		// No data is a renderable result, not an error.
		data := models.NewEmptyChartData()
		s.cache.Add(cacheKey, data)
		return data, nil
	}

	data := s.shape(queryCtx, query, days)

	logger.Debug().
		Int("days_with_data", len(days)).
		Int("shown_maps", data.ShownMapsCount).
		Str(loggers.FieldDay, query.StartDate).
		Msg("chart query computed")

	s.cache.Add(cacheKey, data)
	return data, nil
}

// shape turns the folded day stats into the final payload.
func (s *chartService) shape(ctx context.Context, query models.ChartQuery, days []*DayStats) *models.ChartData {
	ranker := NewRanker(query.BiasExponent)
	shaper := NewShaper(query.Precision)

	rankedMaps := ranker.RankMaps(days)
	rankedServers := ranker.RankServers(days)

	shown, appended := shaper.SelectMaps(rankedMaps, query.MapsToShow, query.AppendMapsContaining)

	// Server display names are a presentation nicety; a failed load falls
	// back to raw ids.
	names, err := s.nameStore.Names(ctx)
	if err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Msg("failed to load server names, using ids")
		names = map[string]string{}
	}

	data := &models.ChartData{
		Labels:                  make([]string, len(days)),
		Datasets:                shaper.Datasets(days, shown, len(rankedMaps)),
		Ranking:                 shaper.MapRanking(rankedMaps, shown),
		ServerRanking:           shaper.ServerRanking(rankedServers, query.TopServers, names, len(days)),
		DailyTotals:             make([]float64, len(days)),
		SnapshotCounts:          make([]int, len(days)),
		ShownMapsCount:          len(shown) - appended,
		AppendedMapsCount:       appended,
		AverageDailyPlayerCount: shaper.round(ranker.WeightedDailyAverage(days)),
	}
	for i, stats := range days {
		data.Labels[i] = stats.Day
		data.DailyTotals[i] = shaper.round(stats.Total)
		data.SnapshotCounts[i] = stats.CycleCount
	}

	return data
}

func (s *chartService) DateRange(ctx context.Context) (string, string, *svcerrors.ServiceError) {
	minDay, maxDay, err := s.sampleStore.DateRange(ctx)
	if err != nil {
		return "", "", errStoreUnavailable(err)
	}
	return minDay, maxDay, nil
}

func (s *chartService) Freshness(ctx context.Context) (string, *svcerrors.ServiceError) {
	token, latest, err := s.sampleStore.Freshness(ctx)
	if err != nil {
		return "", errStoreUnavailable(err)
	}
	if token == "" {
		return "", nil
	}
	return latest.UTC().Format(FreshnessTimeFormat), nil
}

// buildFilter compiles the query's server restriction and map substring
// allow-list into one observation predicate. Returns nil when nothing is
// filtered.
func buildFilter(query models.ChartQuery) ObservationFilter {
	only := make([]string, 0, len(query.OnlyMapsContaining))
	for _, sub := range query.OnlyMapsContaining {
		if trimmed := strings.TrimSpace(sub); trimmed != "" {
			only = append(only, trimmed)
		}
	}
	serverID := ""
	if !strings.EqualFold(query.ServerFilter, models.ServerFilterAll) {
		serverID = query.ServerFilter
	}

	if len(only) == 0 && serverID == "" {
		return nil
	}

	return func(obs models.Observation) bool {
		if serverID != "" && obs.ServerID != serverID {
			return false
		}
		if len(only) > 0 && !containsAny(obs.MapName, only) {
			return false
		}
		return true
	}
}
