package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"partyline/internal/crypto"
	"partyline/internal/domain"
)

const IdentityFilename = "identity.json"

var (
	ErrNoIdentity         = errors.New("no identity stored")
	ErrPassphraseRequired = errors.New("identity is encrypted; passphrase required")
)

// IdentityFileStore persists the local identity to disk.
type IdentityFileStore struct {
	dir string
	mu  sync.Mutex

	scryptN, scryptR, scryptP int
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	N, r, p := scryptParamsDefault()
	return &IdentityFileStore{dir: dir, scryptN: N, scryptR: r, scryptP: p}
}

// Path is the identity file location.
func (s *IdentityFileStore) Path() string { return filepath.Join(s.dir, IdentityFilename) }

// SaveIdentity writes the identity, sealed when passphrase is non-empty.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	out := raw
	if passphrase != "" {
		out, err = seal(passphrase, raw, s.scryptN, s.scryptR, s.scryptP)
		crypto.Wipe(raw)
		if err != nil {
			return err
		}
	}
	return writeFile(s.Path(), out, 0o600)
}

// LoadIdentity reads the identity, opening it with passphrase when sealed.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.Path())
	if err != nil {
		return domain.Identity{}, err
	}
	if b == nil {
		return domain.Identity{}, ErrNoIdentity
	}
	if isSealed(b) {
		if passphrase == "" {
			return domain.Identity{}, ErrPassphraseRequired
		}
		pt, err := open(passphrase, b)
		if err != nil {
			return domain.Identity{}, err
		}
		defer crypto.Wipe(pt)
		b = pt
	}
	var id domain.Identity
	if err := json.Unmarshal(b, &id); err != nil {
		return domain.Identity{}, fmt.Errorf("decode identity: %w", err)
	}
	return id, nil
}

// Exists reports whether an identity file is present.
func (s *IdentityFileStore) Exists() (bool, error) {
	_, err := os.Stat(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
