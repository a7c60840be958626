package collector_test

import (
	"context"
	"testing"
	"time"

	"mapstats/internal/collector"
	collectormocks "mapstats/internal/collector/mocks"
	"mapstats/internal/models"
	storemocks "mapstats/internal/stores/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCollector_RunsOneFullCycle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := collectormocks.NewMockServerLister(ctrl)
	prober := collectormocks.NewMockProber(ctrl)
	sampleStore := storemocks.NewMockSampleStore(ctrl)
	nameStore := storemocks.NewMockServerNameStore(ctrl)
	cooldownStore := storemocks.NewMockCooldownStore(ctrl)

	cooldownStore.EXPECT().
		Load(gomock.Any()).
		Return(map[string]models.ServerCooldown{}, nil)

	// Master list knows two servers; a third was seen recently in the store.
	lister.EXPECT().
		List(gomock.Any()).
		Return([]collector.ServerAddress{
			{ID: "1.1.1.1:27015", Name: "Server One"},
			{ID: "2.2.2.2:27015", Name: "Server Two"},
		}, nil)
	sampleStore.EXPECT().
		RecentServers(gomock.Any(), gomock.Any()).
		Return([]string{"2.2.2.2:27015", "3.3.3.3:27015"}, nil)

	prober.EXPECT().
		Probe(gomock.Any(), "1.1.1.1:27015", gomock.Any()).
		Return(&collector.ServerInfo{Name: "Server One\x01", MapName: "ctf_2fort", Players: 14, Bots: 2}, nil)
	prober.EXPECT().
		Probe(gomock.Any(), "2.2.2.2:27015", gomock.Any()).
		Return(nil, assert.AnError)
	prober.EXPECT().
		Probe(gomock.Any(), "3.3.3.3:27015", gomock.Any()).
		Return(&collector.ServerInfo{Name: "Server Three", MapName: "pl_upward", Players: 3, Bots: 5}, nil)

	sampleStore.EXPECT().
		AppendCycle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cycle *models.ScanCycle) error {
			require.NotEmpty(t, cycle.CycleID)
			require.Len(t, cycle.Observations, 2)
			byServer := map[string]models.Observation{}
			for _, obs := range cycle.Observations {
				// Every observation shares the cycle's ID and timestamp.
				assert.Equal(t, cycle.CycleID, obs.CycleID)
				assert.Equal(t, cycle.Timestamp, obs.Timestamp)
				byServer[obs.ServerID] = obs
			}
			// Bots are excluded from the player count, never below zero.
			assert.Equal(t, 12, byServer["1.1.1.1:27015"].Players)
			assert.Equal(t, 0, byServer["3.3.3.3:27015"].Players)
			assert.Equal(t, "ctf_2fort", byServer["1.1.1.1:27015"].MapName)
			return nil
		})
	nameStore.EXPECT().
		UpsertNames(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, names map[string]string) error {
			// Probe-reported names win and are sanitized.
			assert.Equal(t, "Server One", names["1.1.1.1:27015"])
			assert.Equal(t, "Server Two", names["2.2.2.2:27015"])
			assert.Equal(t, "Server Three", names["3.3.3.3:27015"])
			return nil
		})

	done := make(chan struct{})
	cooldownStore.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cooldowns map[string]models.ServerCooldown) error {
			// The failed server carries a failure streak.
			assert.Equal(t, 1, cooldowns["2.2.2.2:27015"].Failures)
			close(done)
			return nil
		})

	c := collector.NewCollector(lister, prober, sampleStore, nameStore, cooldownStore, collector.Options{
		Interval:     time.Hour, // only the immediate first cycle runs
		ProbeWorkers: 4,
		ProbeTimeout: time.Second,
		RecentDays:   3,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.Start(ctx)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cycle did not complete in time")
	}
	c.Stop()
}

func TestCollector_MasterListFailureFallsBackToRecentServers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := collectormocks.NewMockServerLister(ctrl)
	prober := collectormocks.NewMockProber(ctrl)
	sampleStore := storemocks.NewMockSampleStore(ctrl)
	nameStore := storemocks.NewMockServerNameStore(ctrl)
	cooldownStore := storemocks.NewMockCooldownStore(ctrl)

	cooldownStore.EXPECT().
		Load(gomock.Any()).
		Return(map[string]models.ServerCooldown{}, nil)

	lister.EXPECT().
		List(gomock.Any()).
		Return(nil, assert.AnError)
	sampleStore.EXPECT().
		RecentServers(gomock.Any(), gomock.Any()).
		Return([]string{"1.1.1.1:27015"}, nil)

	prober.EXPECT().
		Probe(gomock.Any(), "1.1.1.1:27015", gomock.Any()).
		Return(&collector.ServerInfo{Name: "Known Server", MapName: "ctf_2fort", Players: 8}, nil)

	sampleStore.EXPECT().
		AppendCycle(gomock.Any(), gomock.Any()).
		Return(nil)
	nameStore.EXPECT().
		UpsertNames(gomock.Any(), gomock.Any()).
		Return(nil)

	done := make(chan struct{})
	cooldownStore.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cooldowns map[string]models.ServerCooldown) error {
			close(done)
			return nil
		})

	c := collector.NewCollector(lister, prober, sampleStore, nameStore, cooldownStore, collector.Options{
		Interval:     time.Hour,
		ProbeWorkers: 2,
		ProbeTimeout: time.Second,
		RecentDays:   3,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.Start(ctx)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cycle did not complete in time")
	}
	c.Stop()
}
