package protocol

import (
	"errors"
	"testing"
)

func TestParseEnvelope_ReadsType(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"type":"stat_resp","lcl":"x"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if env.Type != TypeStatResp {
		t.Fatalf("type=%q", env.Type)
	}
	if string(env.Raw) != `{"type":"stat_resp","lcl":"x"}` {
		t.Fatalf("raw not preserved: %s", env.Raw)
	}
}

func TestParseEnvelope_Malformed(t *testing.T) {
	for _, in := range []string{`not json`, `{"content":"00"}`, `[]`} {
		if _, err := ParseEnvelope([]byte(in)); !errors.Is(err, ErrMalformedMessage) {
			t.Fatalf("%s: want ErrMalformedMessage, got %v", in, err)
		}
	}
}

func TestEncode_ChallengeResponseFieldNames(t *testing.T) {
	b, err := Encode(ChallengeResponse{Type: TypeChallengeResp, Challenge: "ab", Sig: "cd", PubKey: "edff"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"type":"challenge_resp","challenge":"ab","sig":"cd","pubkey":"edff"}`
	if string(b) != want {
		t.Fatalf("got %s want %s", b, want)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(ErrSigningFailure) || !IsFatal(ErrHandshakeTypeMismatch) {
		t.Fatal("signing and handshake mismatch must be fatal")
	}
	if IsFatal(ErrUnknownMessageType) || IsFatal(ErrMalformedMessage) || IsFatal(ErrUnknownOutputDiscriminant) {
		t.Fatal("routing errors must not be fatal")
	}
}
