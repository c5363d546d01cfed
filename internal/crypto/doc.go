// Package crypto exposes the minimal primitives used by the partyline client.
//
// Contents
//
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Key material is returned as the fixed-size array types defined in
// internal/domain. Callers should treat returned secrets as sensitive and
// rely on Wipe when practical to reduce lifetime in memory.
package crypto
