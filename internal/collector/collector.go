package collector

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"mapstats/internal/models"
	"mapstats/internal/shared/loggers"
	"mapstats/internal/shared/metrics"
	"mapstats/internal/shared/svcerrors"
	"mapstats/internal/shared/ulid"
	"mapstats/internal/stores"
)

const (
	maxNameLen = 128
	maxMapLen  = 64
)

// Options configure the scan loop.
type Options struct {
	Interval     time.Duration
	ProbeWorkers int
	ProbeTimeout time.Duration
	RecentDays   int
}

// Collector runs the periodic scan loop: discover servers, probe them
// concurrently, and publish the results as one atomic scan cycle.
type Collector interface {
	Start(ctx context.Context)
	Stop()
}

type collector struct {
	lister        ServerLister
	prober        Prober
	sampleStore   stores.SampleStore
	nameStore     stores.ServerNameStore
	cooldownStore stores.CooldownStore

	interval     time.Duration
	probeWorkers int
	probeTimeout time.Duration
	recentDays   int

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewCollector(lister ServerLister, prober Prober, sampleStore stores.SampleStore, nameStore stores.ServerNameStore, cooldownStore stores.CooldownStore, opts Options, logger loggers.Logger) Collector {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.ProbeWorkers <= 0 {
		opts.ProbeWorkers = 32
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 2 * time.Second
	}
	if opts.RecentDays <= 0 {
		opts.RecentDays = 3
	}
	return &collector{
		lister:        lister,
		prober:        prober,
		sampleStore:   sampleStore,
		nameStore:     nameStore,
		cooldownStore: cooldownStore,
		interval:      opts.Interval,
		probeWorkers:  opts.ProbeWorkers,
		probeTimeout:  opts.ProbeTimeout,
		recentDays:    opts.RecentDays,
		stopCh:        make(chan struct{}),
		logger:        logger,
	}
}

// Start spawns the scan loop goroutine. The first cycle runs immediately;
// later cycles tick at the configured interval.
func (c *collector) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.runLoop(ctx)
	}()
}

// Stop waits for the loop to exit (best called during app shutdown).
func (c *collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.wg.Wait()
}

func (c *collector) runLoop(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	tracker := c.loadTracker(ctx)

	c.runCycleRecovered(ctx, tracker)
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.runCycleRecovered(ctx, tracker)
		}
	}
}

// loadTracker restores persisted cooldowns; an empty tracker on load failure
// only costs some redundant probes.
func (c *collector) loadTracker(ctx context.Context) *cooldownTracker {
	cooldowns, err := c.cooldownStore.Load(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to load cooldowns, starting fresh")
		cooldowns = nil
	}
	return newCooldownTracker(c.probeTimeout, cooldowns)
}

func (c *collector) runCycleRecovered(ctx context.Context, tracker *cooldownTracker) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("scan cycle panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricCyclesTotal.WithLabelValues(svcErr.Code).Inc()
		}
	}()

	cycleID := ulid.NewULID()
	ctx = c.logger.With().
		Str(loggers.FieldCycleID, cycleID).
		Logger().WithContext(ctx)

	started := time.Now()
	svcErr := c.runCycle(ctx, cycleID, tracker)

	errorCode := metrics.ValueNoError
	if svcErr != nil {
		errorCode = svcErr.Code
		loggers.Ctx(ctx).Error().Err(svcErr).Msg("scan cycle failed")
	}
	metricCyclesTotal.WithLabelValues(errorCode).Inc()
	metricCycleDuration.WithLabelValues(errorCode).Observe(time.Since(started).Seconds())
}

func (c *collector) runCycle(ctx context.Context, cycleID string, tracker *cooldownTracker) *svcerrors.ServiceError {
	logger := loggers.Ctx(ctx)

	servers, svcErr := c.buildServerList(ctx)
	if svcErr != nil {
		return svcErr
	}
	if len(servers) == 0 {
		logger.Warn().Msg("no servers to probe")
		return nil
	}

	// Every observation in the cycle carries the same timestamp so the whole
	// round lands in one bucket regardless of how long probing takes.
	cycleTime := time.Now().UTC()
	observations, names := c.probeAll(ctx, cycleID, cycleTime, servers, tracker)

	if len(observations) == 0 {
		logger.Warn().Int("servers", len(servers)).Msg("no servers answered")
		return nil
	}

	cycle := &models.ScanCycle{
		CycleID:      cycleID,
		Timestamp:    cycleTime,
		Observations: observations,
	}
	if err := c.sampleStore.AppendCycle(ctx, cycle); err != nil {
		return errInternalSampleStoreFailed(err)
	}

	if err := c.nameStore.UpsertNames(ctx, names); err != nil {
		logger.Warn().Err(err).Msg("failed to upsert server names")
	}
	if err := c.cooldownStore.Save(ctx, tracker.Snapshot()); err != nil {
		logger.Warn().Err(err).Msg("failed to save cooldowns")
	}

	metricObservationsTotal.Add(float64(len(observations)))
	logger.Info().
		Int("servers", len(servers)).
		Int("observations", len(observations)).
		Msg("scan cycle stored")
	return nil
}

// buildServerList merges the master list with servers seen recently in the
// store, so a transient master-list outage does not blind the collector to
// servers it already knows about.
func (c *collector) buildServerList(ctx context.Context) ([]ServerAddress, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)

	servers, err := c.lister.List(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("master list fetch failed, falling back to recent servers")
		servers = nil
	}

	seen := make(map[string]struct{}, len(servers))
	for _, server := range servers {
		seen[server.ID] = struct{}{}
	}

	since := time.Now().UTC().AddDate(0, 0, -c.recentDays)
	recent, err := c.sampleStore.RecentServers(ctx, since)
	if err != nil {
		if len(servers) == 0 {
			return nil, errInternalSampleStoreFailed(err)
		}
		logger.Warn().Err(err).Msg("failed to list recent servers")
		recent = nil
	}
	for _, serverID := range recent {
		if _, ok := seen[serverID]; ok {
			continue
		}
		seen[serverID] = struct{}{}
		servers = append(servers, ServerAddress{ID: serverID})
	}

	return servers, nil
}

type probeResult struct {
	serverID string
	info     *ServerInfo
}

// probeAll fans the server list out over a fixed worker pool and collects
// the successful observations plus the advertised names.
func (c *collector) probeAll(ctx context.Context, cycleID string, cycleTime time.Time, servers []ServerAddress, tracker *cooldownTracker) ([]models.Observation, map[string]string) {
	jobs := make(chan ServerAddress)
	results := make(chan probeResult)

	var workerWg sync.WaitGroup
	for i := 0; i < c.probeWorkers; i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()

			for server := range jobs {
				results <- probeResult{serverID: server.ID, info: c.probeOne(ctx, server.ID, tracker)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, server := range servers {
			select {
			case <-ctx.Done():
				return
			case jobs <- server:
			}
		}
	}()

	go func() {
		workerWg.Wait()
		close(results)
	}()

	var observations []models.Observation
	names := make(map[string]string)
	for _, server := range servers {
		if name := sanitizeText(server.Name, maxNameLen); name != "" {
			names[server.ID] = name
		}
	}

	for result := range results {
		if result.info == nil {
			continue
		}
		mapName := sanitizeText(result.info.MapName, maxMapLen)
		if mapName == "" {
			continue
		}
		players := result.info.Players - result.info.Bots
		if players < 0 {
			players = 0
		}
		observations = append(observations, models.Observation{
			CycleID:   cycleID,
			ServerID:  result.serverID,
			MapName:   mapName,
			Players:   players,
			Timestamp: cycleTime,
		})
		if name := sanitizeText(result.info.Name, maxNameLen); name != "" {
			names[result.serverID] = name
		}
	}

	return observations, names
}

func (c *collector) probeOne(ctx context.Context, serverID string, tracker *cooldownTracker) *ServerInfo {
	timeout, probe := tracker.Timeout(serverID)
	if !probe {
		metricProbesTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	info, err := c.prober.Probe(ctx, serverID, timeout)
	if err != nil {
		tracker.Failure(serverID)
		metricProbesTotal.WithLabelValues("failure").Inc()
		return nil
	}
	tracker.Success(serverID)
	metricProbesTotal.WithLabelValues("success").Inc()
	return info
}

// sanitizeText strips control characters from server-supplied strings and
// caps their length. Game servers advertise arbitrary bytes; none of them
// belong in stored JSON or log output.
func sanitizeText(s string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if len(out) > maxLen {
		// Back up to a rune boundary so the cap never leaves invalid UTF-8.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = strings.TrimSpace(out[:cut])
	}
	return out
}
