package input

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"partyline/internal/domain"
	"partyline/internal/protocol"
)

const (
	// DefaultMaxLedgerSeqno keeps an input valid for practically any ledger.
	DefaultMaxLedgerSeqno uint64 = 9999999
	// DefaultMaxPayloadBytes caps a single input before hex encoding.
	DefaultMaxPayloadBytes = 64 * 1024

	LivenessPayload = "v0"
	MessagePrefix   = "m"
)

// LivenessInput is the periodic payload asking the contract for recent records.
func LivenessInput() []byte { return []byte(LivenessPayload) }

// MessageInput is the payload that posts text to the party line.
func MessageInput(text string) []byte { return []byte(MessagePrefix + text) }

// Builder signs inputs with one identity.
type Builder struct {
	signer          domain.Signer
	now             func() time.Time
	maxPayloadBytes int
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock sets the nonce source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithMaxPayloadBytes sets the payload cap; zero or less disables it.
func WithMaxPayloadBytes(n int) Option {
	return func(b *Builder) { b.maxPayloadBytes = n }
}

// New returns a Builder signing with signer.
func New(signer domain.Signer, opts ...Option) *Builder {
	b := &Builder{
		signer:          signer,
		now:             time.Now,
		maxPayloadBytes: DefaultMaxPayloadBytes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build wraps payload in a signed envelope nonced with the current time.
func (b *Builder) Build(payload []byte, maxLedgerSeqno uint64) (protocol.SignedInputEnvelope, error) {
	return b.BuildWithNonce(payload, maxLedgerSeqno, Nonce(b.now()))
}

// BuildWithNonce is Build with an explicit nonce.
func (b *Builder) BuildWithNonce(payload []byte, maxLedgerSeqno uint64, nonce string) (protocol.SignedInputEnvelope, error) {
	if b.maxPayloadBytes > 0 && len(payload) > b.maxPayloadBytes {
		return protocol.SignedInputEnvelope{}, fmt.Errorf("%w: %d > %d bytes", protocol.ErrPayloadTooLarge, len(payload), b.maxPayloadBytes)
	}
	content, err := protocol.Encode(protocol.InputContainer{
		Nonce:          nonce,
		Input:          hex.EncodeToString(payload),
		MaxLedgerSeqno: maxLedgerSeqno,
	})
	if err != nil {
		return protocol.SignedInputEnvelope{}, err
	}
	sig, err := b.signer.Sign(content)
	if err != nil {
		return protocol.SignedInputEnvelope{}, err
	}
	return protocol.SignedInputEnvelope{
		Type:    protocol.TypeContractInput,
		Content: hex.EncodeToString(content),
		Sig:     hex.EncodeToString(sig),
	}, nil
}

// BuildStatusRequest returns the unsigned stat request.
func BuildStatusRequest() protocol.StatusRequest {
	return protocol.StatusRequest{Type: protocol.TypeStat}
}

// Nonce renders t as unix milliseconds in decimal.
func Nonce(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// OpenContent decodes an envelope's content back into its container, for
// inspection and tests.
func OpenContent(env protocol.SignedInputEnvelope) (protocol.InputContainer, []byte, error) {
	raw, err := hex.DecodeString(env.Content)
	if err != nil {
		return protocol.InputContainer{}, nil, fmt.Errorf("%w: content: %v", protocol.ErrMalformedMessage, err)
	}
	var c protocol.InputContainer
	if err := protocol.DecodeJSON(raw, &c); err != nil {
		return protocol.InputContainer{}, nil, err
	}
	return c, raw, nil
}
