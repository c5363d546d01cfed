package identity_test

import (
	"errors"
	"testing"

	"partyline/internal/domain"
	"partyline/internal/services/identity"
	"partyline/internal/store"
)

// memStore is an in-memory domain.IdentityStore.
type memStore struct {
	id    *domain.Identity
	pass  string
	saves int
}

func (m *memStore) SaveIdentity(passphrase string, id domain.Identity) error {
	m.id, m.pass = &id, passphrase
	m.saves++
	return nil
}

func (m *memStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	if m.id == nil {
		return domain.Identity{}, store.ErrNoIdentity
	}
	if passphrase != m.pass {
		return domain.Identity{}, store.ErrWrongPassphrase
	}
	return *m.id, nil
}

func (m *memStore) Exists() (bool, error) { return m.id != nil, nil }

func TestGenerateIdentity_WeakPassphraseRejected(t *testing.T) {
	svc := identity.New(&memStore{})
	if _, _, err := svc.GenerateIdentity("short"); !errors.Is(err, identity.ErrWeakPassphrase) {
		t.Fatalf("want ErrWeakPassphrase, got %v", err)
	}
}

func TestGenerateIdentity_EmptyPassphraseAllowed(t *testing.T) {
	ms := &memStore{}
	svc := identity.New(ms)
	id, fp, err := svc.GenerateIdentity("")
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	if id.Public.IsZero() || len(fp) != 20 {
		t.Fatalf("unexpected identity=%x fp=%q", id.Public, fp)
	}
	if ms.saves != 1 {
		t.Fatalf("saves=%d", ms.saves)
	}
}

func TestLoadOrGenerate_CreatesOnceThenLoads(t *testing.T) {
	ms := &memStore{}
	svc := identity.New(ms)
	pass := "Str0ng-Passphrase!"

	first, created, err := svc.LoadOrGenerate(pass)
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	second, created, err := svc.LoadOrGenerate(pass)
	if err != nil || created {
		t.Fatalf("second call: created=%v err=%v", created, err)
	}
	if first != second {
		t.Fatal("identity changed between runs")
	}
	if ms.saves != 1 {
		t.Fatalf("saves=%d", ms.saves)
	}
}

func TestLoadOrGenerate_WrongPassphraseDoesNotOverwrite(t *testing.T) {
	ms := &memStore{}
	svc := identity.New(ms)
	if _, _, err := svc.LoadOrGenerate("Str0ng-Passphrase!"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := svc.LoadOrGenerate("Wr0ng-Passphrase!"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
	if ms.saves != 1 {
		t.Fatal("existing identity was overwritten")
	}
}

func TestFingerprintIdentity_MatchesGenerate(t *testing.T) {
	svc := identity.New(&memStore{})
	_, fp, err := svc.GenerateIdentity("")
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	got, err := svc.FingerprintIdentity("")
	if err != nil {
		t.Fatalf("FingerprintIdentity: %v", err)
	}
	if got != fp {
		t.Fatalf("fingerprint %q != %q", got, fp)
	}
}
