package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMaps_TopNPlusForcedAppend(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)
	ranked := []RankedEntity{
		{Label: "pl_upward", Total: 100},
		{Label: "ctf_2fort", Total: 80},
		{Label: "koth_harvest", Total: 60},
		{Label: "vsh_dustshowdown", Total: 5},
	}

	shown, appended := shaper.SelectMaps(ranked, 2, []string{"vsh_"})
	assert.Equal(t, []string{"pl_upward", "ctf_2fort", "vsh_dustshowdown"}, shown)
	assert.Equal(t, 1, appended)
}

func TestSelectMaps_ForcedEntryAlreadyInTopN_NotAppended(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)
	ranked := []RankedEntity{
		{Label: "vsh_dustshowdown", Total: 100},
		{Label: "ctf_2fort", Total: 80},
	}

	shown, appended := shaper.SelectMaps(ranked, 2, []string{"vsh_"})
	assert.Equal(t, []string{"vsh_dustshowdown", "ctf_2fort"}, shown)
	assert.Zero(t, appended)
}

func TestDatasets_SharesSumToExactly100(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)

	// Three maps with totals that produce repeating decimals: 1/3 each.
	days := []*DayStats{
		{
			Day:        "2026-08-01",
			MapTotals:  map[string]float64{"a": 10, "b": 10, "c": 10},
			CycleCount: 4,
			Total:      30,
		},
	}

	datasets := shaper.Datasets(days, []string{"a", "b"}, 3)
	require.Len(t, datasets, 3) // a, b, Other

	sum := 0.0
	for _, ds := range datasets {
		require.Len(t, ds.Data, 1)
		sum += ds.Data[0]
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
	assert.Equal(t, OtherLabel, datasets[2].Label)
}

func TestDatasets_NoOther_DriftGoesToLastShown(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)
	days := []*DayStats{
		{
			Day:        "2026-08-01",
			MapTotals:  map[string]float64{"a": 10, "b": 10, "c": 10},
			CycleCount: 4,
			Total:      30,
		},
	}

	datasets := shaper.Datasets(days, []string{"a", "b", "c"}, 3)
	require.Len(t, datasets, 3)

	sum := 0.0
	for _, ds := range datasets {
		sum += ds.Data[0]
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestDatasets_ZeroTotalDayStaysAllZero(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)
	days := []*DayStats{
		{
			Day:        "2026-08-01",
			MapTotals:  map[string]float64{},
			CycleCount: 1,
			Total:      0,
		},
	}

	datasets := shaper.Datasets(days, []string{"a"}, 2)
	require.Len(t, datasets, 2)
	assert.Zero(t, datasets[0].Data[0])
	assert.Zero(t, datasets[1].Data[0])
}

func TestMapRanking_OtherAbsorbsRemainder(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)
	ranked := []RankedEntity{
		{Label: "a", Total: 60},
		{Label: "b", Total: 30},
		{Label: "c", Total: 10},
	}

	entries := shaper.MapRanking(ranked, []string{"a", "b"})
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Label)
	assert.InDelta(t, 60.0, entries[0].Pop, 1e-9)
	assert.Equal(t, OtherLabel, entries[2].Label)
	assert.InDelta(t, 10.0, entries[2].Pop, 1e-9)
}

func TestMapRanking_ZeroTotal_Empty(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)
	assert.Empty(t, shaper.MapRanking(nil, nil))
}

func TestServerRanking_AveragesOverDaysWithDataOnly(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(1)
	ranked := []RankedEntity{
		{Label: "1.2.3.4:27015", Total: 100},
		{Label: "5.6.7.8:27015", Total: 40},
	}
	names := map[string]string{"1.2.3.4:27015": "Best Server EU"}

	// 5 days with data, even if the query window spanned 10.
	entries := shaper.ServerRanking(ranked, 1, names, 5)
	require.Len(t, entries, 2)

	assert.Equal(t, "1.2.3.4:27015", entries[0].ID)
	assert.Equal(t, "Best Server EU", entries[0].Label)
	assert.InDelta(t, 20.0, entries[0].Pop, 1e-9)

	assert.Equal(t, OtherLabel, entries[1].ID)
	assert.InDelta(t, 8.0, entries[1].Pop, 1e-9)
}

func TestServerRanking_MissingNameFallsBackToID(t *testing.T) {
	t.Parallel()

	shaper := NewShaper(2)
	ranked := []RankedEntity{{Label: "1.2.3.4:27015", Total: 10}}

	entries := shaper.ServerRanking(ranked, 5, map[string]string{}, 1)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.2.3.4:27015", entries[0].Label)
}
