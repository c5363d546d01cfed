// Package router dispatches inbound server messages by their type field.
package router

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"partyline/internal/protocol"
	"partyline/internal/protocol/handshake"
	"partyline/internal/protocol/output"
)

// Kind says which branch handled a message.
type Kind int

const (
	KindNone Kind = iota
	KindHandshake
	KindOutput
	KindPassThrough
)

func (k Kind) String() string {
	switch k {
	case KindHandshake:
		return "handshake"
	case KindOutput:
		return "output"
	case KindPassThrough:
		return "pass_through"
	default:
		return "none"
	}
}

// Result is the decoded command for one inbound message.
type Result struct {
	Kind Kind
	Type string
	// Reply is an encoded message to send back, if any.
	Reply []byte
	// Lines are newly surfaced output lines.
	Lines []string
	// Raw is the untouched message for pass-through types.
	Raw json.RawMessage
}

// Router owns the handshake handler and output decoder of one session.
type Router struct {
	handshake *handshake.Handler
	decoder   *output.Decoder
}

// New returns a Router dispatching to h and d.
func New(h *handshake.Handler, d *output.Decoder) *Router {
	return &Router{handshake: h, decoder: d}
}

// Route decodes raw and dispatches it. Errors satisfying protocol.IsFatal end
// the session; every other error means the message was discarded.
func (r *Router) Route(raw []byte) (Result, error) {
	env, err := protocol.ParseEnvelope(raw)
	if err != nil {
		return Result{}, err
	}
	switch env.Type {
	case protocol.TypePublicChallenge:
		return r.routeChallenge(env)
	case protocol.TypeContractOutput:
		return r.routeOutput(env)
	}
	if protocol.IsPassThrough(env.Type) {
		return Result{Kind: KindPassThrough, Type: env.Type, Raw: env.Raw}, nil
	}
	return Result{Type: env.Type}, fmt.Errorf("%w: %q", protocol.ErrUnknownMessageType, env.Type)
}

func (r *Router) routeChallenge(env protocol.Envelope) (Result, error) {
	res := Result{Kind: KindHandshake, Type: env.Type}
	var c protocol.Challenge
	if err := env.Decode(&c); err != nil {
		return res, err
	}
	resp, err := r.handshake.Respond(c)
	if err != nil {
		return res, err
	}
	res.Reply, err = protocol.Encode(resp)
	return res, err
}

func (r *Router) routeOutput(env protocol.Envelope) (Result, error) {
	res := Result{Kind: KindOutput, Type: env.Type}
	var out protocol.ContractOutput
	if err := env.Decode(&out); err != nil {
		return res, err
	}
	if out.Content == "" {
		return res, nil
	}
	batch, err := hex.DecodeString(out.Content)
	if err != nil {
		return res, fmt.Errorf("%w: output content: %v", protocol.ErrMalformedMessage, err)
	}
	res.Lines, err = r.decoder.Decode(batch)
	return res, err
}
