package models

import "time"

// ServerCooldown tracks the adaptive probe state for one server. Timeouts
// shrink on success and grow on failure; repeated failures earn an
// exponentially longer skip window.
type ServerCooldown struct {
	Timeout   time.Duration `json:"timeout"`
	Failures  int           `json:"failures"`
	SkipUntil time.Time     `json:"skipUntil"`
}
