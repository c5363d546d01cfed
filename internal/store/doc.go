// Package store provides file-based persistence for the client identity.
//
// IdentityFileStore implements domain.IdentityStore. Without a passphrase the
// identity is written as plain hex JSON ({"publicKey": ..., "privateKey": ...}),
// the key file layout other partyline clients read. With a passphrase the same
// JSON is sealed with ChaCha20-Poly1305 under an scrypt-derived key. Writes go
// through a temp file and rename, mode 0600, and are serialized by a mutex.
package store
