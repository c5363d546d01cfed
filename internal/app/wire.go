package app

import (
	"os"

	"partyline/internal/logging"
	identitysvc "partyline/internal/services/identity"
	"partyline/internal/store"
)

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}
	log := logging.New(logging.Options{App: "partyline", Level: cfg.LogLevel})

	identityStore := store.NewIdentityFileStore(cfg.Home)
	ids := identitysvc.New(identityStore)

	return New(cfg, identityStore, ids, log), nil
}
