package tui

import "time"

// DeckTypeState is the dashboard's per-deck scheduling and status record.
// Fetch progress itself lives in each deck's loader; this tracks what the
// tick scheduler and the status badges need: cadence, pause state, and the
// outcome of the last settled fetch.
type DeckTypeState struct {
	TypeID   string
	Interval time.Duration
	Paused   bool

	LastError       string // user-facing message for the last failure, "" when healthy
	LastErrorAt     time.Time
	LastTickOK      bool
	LastTickAt      time.Time
	ConsecutiveErrs int
}
