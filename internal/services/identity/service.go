package identity

import (
	"errors"
	"fmt"
	"unicode"

	"partyline/internal/crypto"
	"partyline/internal/domain"
	"partyline/internal/store"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages identity key creation and access using a backing store.
type Service struct {
	store domain.IdentityStore
}

// New returns an identity service backed by the given store.
func New(s domain.IdentityStore) *Service { return &Service{store: s} }

// GenerateIdentity creates a new identity, saves it (encrypted when a passphrase
// is given) and returns it with a short fingerprint of the public key.
// An empty passphrase stores the key file in the clear.
func (s *Service) GenerateIdentity(passphrase string) (domain.Identity, domain.Fingerprint, error) {
	if passphrase != "" && !isSecurePassphrase(passphrase) {
		return domain.Identity{}, "", ErrWeakPassphrase
	}
	id, err := crypto.GenerateEd25519()
	if err != nil {
		return domain.Identity{}, "", err
	}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return domain.Identity{}, "", err
	}
	return id, fingerprint(id), nil
}

// LoadIdentity returns the stored identity.
func (s *Service) LoadIdentity(passphrase string) (domain.Identity, error) {
	return s.store.LoadIdentity(passphrase)
}

// LoadOrGenerate loads the stored identity, generating and saving one if none
// exists. The bool reports whether a new identity was created.
func (s *Service) LoadOrGenerate(passphrase string) (domain.Identity, bool, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, store.ErrNoIdentity) {
		return domain.Identity{}, false, err
	}
	id, _, err = s.GenerateIdentity(passphrase)
	if err != nil {
		return domain.Identity{}, false, err
	}
	return id, true, nil
}

// FingerprintIdentity returns a short fingerprint of the stored public key.
func (s *Service) FingerprintIdentity(passphrase string) (domain.Fingerprint, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	return fingerprint(id), nil
}

func fingerprint(id domain.Identity) domain.Fingerprint {
	return domain.Fingerprint(crypto.Fingerprint(id.Public.Slice()))
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
