package domain

import "context"

// IdentityStore persists your long-term identity keys.
type IdentityStore interface {
	SaveIdentity(passphrase string, id Identity) error
	LoadIdentity(passphrase string) (Identity, error)
	Exists() (bool, error)
}

// IdentityService creates, retrieves, and inspects your identity keys.
type IdentityService interface {
	GenerateIdentity(passphrase string) (Identity, Fingerprint, error)
	LoadIdentity(passphrase string) (Identity, error)
	LoadOrGenerate(passphrase string) (Identity, bool, error)
	FingerprintIdentity(passphrase string) (Fingerprint, error)
}

// MessageSource yields inbound messages one at a time, in arrival order.
type MessageSource interface {
	Receive(ctx context.Context) ([]byte, error)
}

// MessageSink transmits one outbound message.
type MessageSink interface {
	Send(ctx context.Context, msg []byte) error
}

// Conn is a bidirectional message channel to the contract server.
type Conn interface {
	MessageSource
	MessageSink
	Close() error
}

// Signer produces detached signatures and the tagged public key that verifies them.
// Identity satisfies it.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
	PublicKeyEncoded() string
}

var _ Signer = Identity{}
