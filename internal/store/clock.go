package store

import "time"

// Clock returns the current time.
type Clock func() time.Time
