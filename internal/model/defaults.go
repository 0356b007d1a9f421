package model

import "time"

// Shared defaults used by both the demo server and the TUI binary.
const (
	DefaultUpdateInterval = 10 * time.Second
	DefaultPageSize       = 25
	DefaultSkin           = "default"
	DefaultAPIBaseURL     = "http://localhost:3000"
)

// PageSizeOptions is the fixed set of screener page sizes.
var PageSizeOptions = []int{10, 25, 50, 100}
