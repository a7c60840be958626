package models

import "time"

// Observation is one record produced by a single scan cycle for a single
// server: which map it ran and how many players were on it at the cycle's
// shared timestamp. Observations are immutable once written.
type Observation struct {
	CycleID   string    `json:"cycleId"`
	ServerID  string    `json:"serverId"` // "ip:port"
	MapName   string    `json:"mapName"`
	Players   int       `json:"players"`
	Timestamp time.Time `json:"timestamp"`
}

// ScanCycle is one coordinated polling round across many servers. All
// observations in a cycle share the cycle's ID and timestamp, and the cycle
// is the unit of atomic visibility: a reader sees all of it or none of it.
type ScanCycle struct {
	CycleID      string        `json:"cycleId"`
	Timestamp    time.Time     `json:"timestamp"`
	Observations []Observation `json:"observations"`
}
