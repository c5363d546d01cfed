package protocol

import (
	"errors"

	"partyline/internal/domain"
)

var (
	ErrMalformedMessage          = errors.New("protocol: malformed message")
	ErrUnknownMessageType        = errors.New("protocol: unknown message type")
	ErrUnknownOutputDiscriminant = errors.New("protocol: unknown output discriminant")
	ErrHandshakeTypeMismatch     = errors.New("protocol: handshake type mismatch")
	ErrPayloadTooLarge           = errors.New("protocol: input payload too large")

	ErrSigningFailure = domain.ErrSigningFailure
)

// IsFatal reports whether err must stop the session rather than be logged and skipped.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSigningFailure) || errors.Is(err, ErrHandshakeTypeMismatch)
}
