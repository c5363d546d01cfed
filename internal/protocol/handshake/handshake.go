package handshake

import (
	"encoding/hex"
	"fmt"
	"sync"

	"partyline/internal/domain"
	"partyline/internal/protocol"
)

// Handler produces challenge responses for one session.
type Handler struct {
	signer domain.Signer

	once  sync.Once
	ready chan struct{}
}

// New returns a handler that signs with signer.
func New(signer domain.Signer) *Handler {
	return &Handler{signer: signer, ready: make(chan struct{})}
}

// Respond signs c and returns the challenge_resp to send back.
func (h *Handler) Respond(c protocol.Challenge) (protocol.ChallengeResponse, error) {
	if c.Type != protocol.TypePublicChallenge {
		return protocol.ChallengeResponse{}, fmt.Errorf("%w: got %q", protocol.ErrHandshakeTypeMismatch, c.Type)
	}
	sig, err := h.signer.Sign([]byte(c.Challenge))
	if err != nil {
		return protocol.ChallengeResponse{}, err
	}
	resp := protocol.ChallengeResponse{
		Type:      protocol.TypeChallengeResp,
		Challenge: c.Challenge,
		Sig:       hex.EncodeToString(sig),
		PubKey:    h.signer.PublicKeyEncoded(),
	}
	h.once.Do(func() { close(h.ready) })
	return resp, nil
}

// Ready is closed once the first challenge has been answered.
func (h *Handler) Ready() <-chan struct{} { return h.ready }

// Completed reports whether Ready has fired.
func (h *Handler) Completed() bool {
	select {
	case <-h.ready:
		return true
	default:
		return false
	}
}
