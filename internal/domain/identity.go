package domain

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
)

// KeyTag prefixes encoded public keys and names the signature scheme.
const KeyTag = "ed"

// ErrSigningFailure is returned when the identity cannot produce a signature.
// A session cannot proceed past it.
var ErrSigningFailure = errors.New("identity: signing failure")

// Identity is the client's long-term Ed25519 signing keypair.
//
// The JSON shape matches the plain key file: {"publicKey": hex, "privateKey": hex}.
type Identity struct {
	Public  Ed25519Public  `json:"publicKey"`
	Private Ed25519Private `json:"privateKey"`
}

// Sign returns a detached Ed25519 signature over msg.
func (id Identity) Sign(msg []byte) ([]byte, error) {
	if id.Private.IsZero() {
		return nil, fmt.Errorf("%w: private key absent", ErrSigningFailure)
	}
	// ed25519.PrivateKey is seed||public; a mismatch means the pair was mangled.
	if !bytes.Equal(id.Private[32:], id.Public[:]) {
		return nil, fmt.Errorf("%w: private key does not match public key", ErrSigningFailure)
	}
	return ed25519.Sign(ed25519.PrivateKey(id.Private[:]), msg), nil
}

// PublicKeyEncoded renders the public key as KeyTag followed by lower-case hex.
func (id Identity) PublicKeyEncoded() string {
	return KeyTag + hex.EncodeToString(id.Public[:])
}
