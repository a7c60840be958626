package models

// Dataset is one shown entity's day-aligned percentage series.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// RankingEntry is one map's share of total contribution over the window.
type RankingEntry struct {
	Label string  `json:"label"`
	Pop   float64 `json:"pop"`
}

// ServerRankingEntry is one server's average per-day contribution over the
// window. Pop carries an average player count, not a percentage.
type ServerRankingEntry struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Pop   float64 `json:"pop"`
}

// ChartData is the full payload returned to the API layer for one query.
type ChartData struct {
	Labels                  []string             `json:"labels"`
	Datasets                []Dataset            `json:"datasets"`
	Ranking                 []RankingEntry       `json:"ranking"`
	ServerRanking           []ServerRankingEntry `json:"serverRanking"`
	DailyTotals             []float64            `json:"dailyTotals"`
	SnapshotCounts          []int                `json:"snapshotCounts"`
	ShownMapsCount          int                  `json:"shownMapsCount"`
	AppendedMapsCount       int                  `json:"appendedMapsCount"`
	AverageDailyPlayerCount float64              `json:"averageDailyPlayerCount"`
}

// NewEmptyChartData returns the explicit empty result used when a window
// holds no observations. Slices are allocated so the JSON renders [] rather
// than null.
func NewEmptyChartData() *ChartData {
	return &ChartData{
		Labels:         []string{},
		Datasets:       []Dataset{},
		Ranking:        []RankingEntry{},
		ServerRanking:  []ServerRankingEntry{},
		DailyTotals:    []float64{},
		SnapshotCounts: []int{},
	}
}
