package collector

import (
	"testing"
	"time"

	"mapstats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownTracker_UnknownServerGetsDefaultTimeout(t *testing.T) {
	t.Parallel()

	tracker := newCooldownTracker(2*time.Second, nil)

	timeout, probe := tracker.Timeout("1.2.3.4:27015")
	assert.True(t, probe)
	assert.Equal(t, 2*time.Second, timeout)
}

func TestCooldownTracker_SuccessShrinksTimeoutTowardFloor(t *testing.T) {
	t.Parallel()

	tracker := newCooldownTracker(2*time.Second, nil)
	serverID := "1.2.3.4:27015"

	tracker.Success(serverID)
	timeout, _ := tracker.Timeout(serverID)
	assert.Equal(t, time.Duration(float64(2*time.Second)*0.9), timeout)

	// Many successes bottom out at the floor rather than reaching zero.
	for i := 0; i < 100; i++ {
		tracker.Success(serverID)
	}
	timeout, probe := tracker.Timeout(serverID)
	assert.True(t, probe)
	assert.Equal(t, minProbeTimeout, timeout)
}

func TestCooldownTracker_FailureDoublesTimeoutUpToCap(t *testing.T) {
	t.Parallel()

	tracker := newCooldownTracker(2*time.Second, nil)
	current := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }
	serverID := "1.2.3.4:27015"

	for i := 0; i < 10; i++ {
		tracker.Failure(serverID)
	}

	snapshot := tracker.Snapshot()
	require.Contains(t, snapshot, serverID)
	assert.Equal(t, maxProbeTimeout, snapshot[serverID].Timeout)
	assert.Equal(t, 10, snapshot[serverID].Failures)
}

func TestCooldownTracker_FailureStreakEarnsExponentialSkip(t *testing.T) {
	t.Parallel()

	tracker := newCooldownTracker(2*time.Second, nil)
	current := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return current }
	serverID := "1.2.3.4:27015"

	// 1st failure: 1m skip; 2nd: 2m; 3rd: 4m; capped at 10m.
	tracker.Failure(serverID)
	assert.Equal(t, current.Add(time.Minute), tracker.Snapshot()[serverID].SkipUntil)

	tracker.Failure(serverID)
	assert.Equal(t, current.Add(2*time.Minute), tracker.Snapshot()[serverID].SkipUntil)

	tracker.Failure(serverID)
	assert.Equal(t, current.Add(4*time.Minute), tracker.Snapshot()[serverID].SkipUntil)

	for i := 0; i < 10; i++ {
		tracker.Failure(serverID)
	}
	assert.Equal(t, current.Add(skipCap), tracker.Snapshot()[serverID].SkipUntil)

	// Within the skip window the server is not probed at all.
	_, probe := tracker.Timeout(serverID)
	assert.False(t, probe)

	// After the window it is probed again.
	current = current.Add(skipCap + time.Second)
	_, probe = tracker.Timeout(serverID)
	assert.True(t, probe)
}

func TestCooldownTracker_SuccessClearsFailureStreak(t *testing.T) {
	t.Parallel()

	tracker := newCooldownTracker(2*time.Second, nil)
	serverID := "1.2.3.4:27015"

	tracker.Failure(serverID)
	tracker.Failure(serverID)
	tracker.Success(serverID)

	state := tracker.Snapshot()[serverID]
	assert.Zero(t, state.Failures)
	assert.True(t, state.SkipUntil.IsZero())
}

func TestCooldownTracker_RestoresPersistedState(t *testing.T) {
	t.Parallel()

	persisted := map[string]models.ServerCooldown{
		"1.2.3.4:27015": {Timeout: 4 * time.Second, Failures: 2},
	}
	tracker := newCooldownTracker(2*time.Second, persisted)

	timeout, probe := tracker.Timeout("1.2.3.4:27015")
	assert.True(t, probe)
	assert.Equal(t, 4*time.Second, timeout)
}
