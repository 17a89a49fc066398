package domain

import "time"

const (
	// DefaultPollInterval is the delay between two status queries of a wait.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultStartID is the conventional entry screen of a map.
	DefaultStartID = "start"
)
