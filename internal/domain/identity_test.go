package domain_test

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"partyline/internal/crypto"
	"partyline/internal/domain"
)

func TestIdentity_SignVerifies(t *testing.T) {
	id, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	sig, err := id.Sign([]byte("hello"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !ed25519.Verify(id.Public.Slice(), []byte("hello"), sig) {
		t.Fatal("signature did not verify")
	}
	again, _ := id.Sign([]byte("hello"))
	if string(again) != string(sig) {
		t.Fatal("ed25519 signatures must be deterministic")
	}
}

func TestIdentity_SignWithoutKeyFails(t *testing.T) {
	var id domain.Identity
	if _, err := id.Sign([]byte("x")); !errors.Is(err, domain.ErrSigningFailure) {
		t.Fatalf("want ErrSigningFailure, got %v", err)
	}
}

func TestIdentity_SignWithMismatchedKeyFails(t *testing.T) {
	id, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	id.Public[0] ^= 0xff
	if _, err := id.Sign([]byte("x")); !errors.Is(err, domain.ErrSigningFailure) {
		t.Fatalf("want ErrSigningFailure, got %v", err)
	}
}

func TestIdentity_PublicKeyEncoded(t *testing.T) {
	id := domain.Identity{Public: domain.Ed25519Public{0xab, 0x01}}
	got := id.PublicKeyEncoded()
	if !strings.HasPrefix(got, "edab01") {
		t.Fatalf("unexpected encoding %q", got)
	}
	if len(got) != 2+64 {
		t.Fatalf("want 66 chars, got %d", len(got))
	}
}

func TestIdentity_JSONUsesHexKeys(t *testing.T) {
	id, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	raw, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var shape map[string]string
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("key file should be flat strings: %v", err)
	}
	if len(shape["publicKey"]) != 64 || len(shape["privateKey"]) != 128 {
		t.Fatalf("unexpected key lengths in %s", raw)
	}
	var back domain.Identity
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != id {
		t.Fatal("identity changed across JSON")
	}
}

func TestEd25519Public_UnmarshalRejectsWrongLength(t *testing.T) {
	var pub domain.Ed25519Public
	if err := pub.UnmarshalText([]byte("abcd")); err == nil {
		t.Fatal("expected length error")
	}
}
