package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"partyline/internal/session"
)

const (
	ConfigFilename = "config.toml"
	DefaultServer  = "wss://localhost:8080"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home               string // config directory, e.g. $HOME/.partyline
	Server             string // contract server websocket URL
	InsecureSkipVerify bool   // accept self-signed server certificates
	HandshakeTimeout   time.Duration
	LogLevel           string
	Session            session.Config
}

// DefaultConfig returns the client defaults rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		Home:               home,
		Server:             DefaultServer,
		InsecureSkipVerify: true,
		HandshakeTimeout:   10 * time.Second,
		LogLevel:           "info",
		Session:            session.DefaultConfig(),
	}
}

type fileConfig struct {
	Server             string `toml:"server"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
	HandshakeTimeout   string `toml:"handshake_timeout"`
	LogLevel           string `toml:"log_level"`
	MaxLedgerSeqno     uint64 `toml:"max_ledger_seqno"`
	LivenessInterval   string `toml:"liveness_interval"`
	MaxPayloadBytes    int    `toml:"max_payload_bytes"`
}

// LoadConfig overlays the TOML file at path onto cfg. A missing file is not
// an error when optional is set.
func LoadConfig(cfg Config, path string, optional bool) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("server") {
		if s := strings.TrimSpace(raw.Server); s != "" {
			cfg.Server = s
		}
	}
	if meta.IsDefined("insecure_skip_verify") {
		cfg.InsecureSkipVerify = raw.InsecureSkipVerify
	}
	if meta.IsDefined("handshake_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.HandshakeTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse handshake_timeout: %w", err)
		}
		cfg.HandshakeTimeout = d
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("max_ledger_seqno") {
		cfg.Session.MaxLedgerSeqno = raw.MaxLedgerSeqno
	}
	if meta.IsDefined("liveness_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.LivenessInterval))
		if err != nil {
			return Config{}, fmt.Errorf("parse liveness_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("liveness_interval must be positive, got %s", d)
		}
		cfg.Session.LivenessInterval = d
	}
	if meta.IsDefined("max_payload_bytes") {
		cfg.Session.MaxPayloadBytes = raw.MaxPayloadBytes
	}
	return cfg, nil
}
