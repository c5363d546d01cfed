package session

import (
	"time"

	"partyline/internal/protocol/input"
)

// Config holds per-session protocol settings.
type Config struct {
	MaxLedgerSeqno   uint64
	LivenessInterval time.Duration
	MaxPayloadBytes  int
	// Clock supplies input nonces; nil means time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the settings the partyline contract expects.
func DefaultConfig() Config {
	return Config{
		MaxLedgerSeqno:   input.DefaultMaxLedgerSeqno,
		LivenessInterval: 2 * time.Second,
		MaxPayloadBytes:  input.DefaultMaxPayloadBytes,
	}
}
