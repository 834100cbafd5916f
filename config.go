package endgame

import (
	"time"
)

// Config bounds the work a Session will do for one solve.
type Config struct {
	// Timeout is the wall-clock budget of one solve. Zero means no limit.
	Timeout time.Duration
	// MaxUnseen is the number of identities that may be entirely unseen
	// (no copy visible or discarded) before the solver gives up.
	MaxUnseen int
	// CacheSize bounds each memoization cache of a Session.
	CacheSize int
}

func DefaultConfig() Config {
	return Config{
		Timeout:   5 * time.Second,
		MaxUnseen: 2,
		CacheSize: 1 << 20,
	}
}
