package domain

import (
	"encoding/hex"
	"fmt"
)

type Ed25519Private [64]byte
type Ed25519Public [32]byte

func (k Ed25519Private) Slice() []byte { return k[:] }
func (k Ed25519Public) Slice() []byte  { return k[:] }

// IsZero reports whether the key was never set.
func (k Ed25519Private) IsZero() bool { return k == Ed25519Private{} }

func (k Ed25519Public) IsZero() bool { return k == Ed25519Public{} }

// MarshalText encodes the key as lower-case hex so JSON key files stay readable.
func (k Ed25519Private) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(k[:])), nil
}

func (k *Ed25519Private) UnmarshalText(text []byte) error {
	return decodeFixedHex("Ed25519 private", text, k[:])
}

func (k Ed25519Public) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(k[:])), nil
}

func (k *Ed25519Public) UnmarshalText(text []byte) error {
	return decodeFixedHex("Ed25519 public", text, k[:])
}

func decodeFixedHex(what string, text, dst []byte) error {
	if hex.DecodedLen(len(text)) != len(dst) {
		return fmt.Errorf("%s: want %d hex bytes, got %d chars", what, len(dst), len(text))
	}
	if _, err := hex.Decode(dst, text); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
