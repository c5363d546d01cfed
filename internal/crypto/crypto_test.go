package crypto_test

import (
	"testing"

	"partyline/internal/crypto"
)

func TestGenerateEd25519_SignVerify(t *testing.T) {
	id, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	msg := []byte("partyline")
	sig := crypto.SignEd25519(id.Private, msg)
	if len(sig) != 64 {
		t.Fatalf("want 64-byte signature, got %d", len(sig))
	}
	if !crypto.VerifyEd25519(id.Public, msg, sig) {
		t.Fatal("signature did not verify")
	}
	if crypto.VerifyEd25519(id.Public, []byte("other"), sig) {
		t.Fatal("signature verified over the wrong message")
	}
}

func TestFingerprint_StableAndShort(t *testing.T) {
	a := crypto.Fingerprint([]byte{1, 2, 3})
	b := crypto.Fingerprint([]byte{1, 2, 3})
	if a != b {
		t.Fatalf("fingerprint not stable: %s != %s", a, b)
	}
	if len(a) != 20 {
		t.Fatalf("want 20 hex chars, got %d", len(a))
	}
}

func TestWipe_Zeroes(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	crypto.Wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
}
