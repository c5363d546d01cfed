package protocol

import (
	"encoding/json"
	"fmt"
)

const (
	TypePublicChallenge = "public_challenge"
	TypeChallengeResp   = "challenge_resp"
	TypeContractInput   = "contract_input"
	TypeContractOutput  = "contract_output"
	TypeStat            = "stat"

	// Server replies the client does not interpret; handed to the caller as-is.
	TypeStatResp             = "stat_resp"
	TypeContractInputStatus  = "contract_input_status"
	TypeContractReadResponse = "contract_read_response"
)

// Challenge is the server's public_challenge.
type Challenge struct {
	Version   string `json:"version"`
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
}

// ChallengeResponse answers a Challenge.
type ChallengeResponse struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Sig       string `json:"sig"`
	PubKey    string `json:"pubkey"`
}

// InputContainer is the signed body of a contract_input.
//
// Field order is the canonical serialization order; do not reorder.
type InputContainer struct {
	Nonce          string `json:"nonce"`
	Input          string `json:"input"`
	MaxLedgerSeqno uint64 `json:"max_ledger_seqno"`
}

// SignedInputEnvelope carries a hex encoded InputContainer and its signature.
type SignedInputEnvelope struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Sig     string `json:"sig"`
}

// StatusRequest asks the server for its status. It is not signed.
type StatusRequest struct {
	Type string `json:"type"`
}

// ContractOutput carries a hex encoded output batch.
type ContractOutput struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Envelope is the outer shape common to every inbound message.
type Envelope struct {
	Type string
	Raw  json.RawMessage
}

// ParseEnvelope reads the type field of an inbound message.
func ParseEnvelope(raw []byte) (Envelope, error) {
	var head struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if head.Type == nil {
		return Envelope{}, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}
	return Envelope{Type: *head.Type, Raw: append(json.RawMessage(nil), raw...)}, nil
}

// Decode unmarshals the full message into out.
func (e Envelope) Decode(out any) error {
	if err := json.Unmarshal(e.Raw, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedMessage, e.Type, err)
	}
	return nil
}

// Encode serializes an outbound message as a flat JSON object.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// IsPassThrough reports whether typ is a known server message the client
// forwards to its caller untouched.
func IsPassThrough(typ string) bool {
	switch typ {
	case TypeStatResp, TypeContractInputStatus, TypeContractReadResponse:
		return true
	}
	return false
}

// DecodeJSON unmarshals raw into out, reporting failures as malformed messages.
func DecodeJSON(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return nil
}
