package collector

import (
	"sync"
	"time"

	"mapstats/internal/models"
)

const (
	minProbeTimeout = 500 * time.Millisecond
	maxProbeTimeout = 5 * time.Second

	skipBase = time.Minute
	skipCap  = 10 * time.Minute
)

// cooldownTracker adapts per-server probe behavior from observed outcomes.
// A responsive server earns a gradually shorter timeout; a failing one gets a
// doubled timeout and, as failures stack up, an exponentially longer skip
// window so dead servers stop costing a full timeout every cycle.
type cooldownTracker struct {
	mu             sync.Mutex
	servers        map[string]models.ServerCooldown
	defaultTimeout time.Duration
	now            func() time.Time
}

func newCooldownTracker(defaultTimeout time.Duration, initial map[string]models.ServerCooldown) *cooldownTracker {
	if defaultTimeout <= 0 {
		defaultTimeout = 2 * time.Second
	}
	if initial == nil {
		initial = make(map[string]models.ServerCooldown)
	}
	return &cooldownTracker{
		servers:        initial,
		defaultTimeout: defaultTimeout,
		now:            time.Now,
	}
}

// Timeout returns the probe timeout to use for serverID and whether the
// server should be probed at all this cycle.
func (t *cooldownTracker) Timeout(serverID string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.servers[serverID]
	if !ok {
		return t.defaultTimeout, true
	}
	if state.SkipUntil.After(t.now()) {
		return 0, false
	}
	return state.Timeout, true
}

// Success shortens the server's timeout by 10% toward the floor and clears
// any failure streak.
func (t *cooldownTracker) Success(serverID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.servers[serverID]
	if !ok {
		state = models.ServerCooldown{Timeout: t.defaultTimeout}
	}

	state.Timeout = time.Duration(float64(state.Timeout) * 0.9)
	if state.Timeout < minProbeTimeout {
		state.Timeout = minProbeTimeout
	}
	state.Failures = 0
	state.SkipUntil = time.Time{}
	t.servers[serverID] = state
}

// Failure doubles the server's timeout toward the cap and schedules an
// exponential skip window: 1m, 2m, 4m... capped at 10m.
func (t *cooldownTracker) Failure(serverID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.servers[serverID]
	if !ok {
		state = models.ServerCooldown{Timeout: t.defaultTimeout}
	}

	state.Timeout *= 2
	if state.Timeout > maxProbeTimeout {
		state.Timeout = maxProbeTimeout
	}
	state.Failures++

	skip := skipBase << (state.Failures - 1)
	if skip > skipCap || skip <= 0 {
		skip = skipCap
	}
	state.SkipUntil = t.now().Add(skip)
	t.servers[serverID] = state
}

// Snapshot copies the tracked state for persistence between restarts.
func (t *cooldownTracker) Snapshot() map[string]models.ServerCooldown {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]models.ServerCooldown, len(t.servers))
	for serverID, state := range t.servers {
		out[serverID] = state
	}
	return out
}
