// Package identity manages creation, encryption and loading of the local identity.
//
// It generates the Ed25519 signing key pair the client proves itself with,
// enforces the passphrase policy when a passphrase is used, and persists the
// identity via the domain.IdentityStore. LoadOrGenerate gives first runs a
// fresh identity and later runs the saved one.
package identity
