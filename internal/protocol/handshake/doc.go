// Package handshake answers the server's public_challenge.
//
// The server opens every session with a challenge string. The client proves
// possession of its identity key by signing the challenge string exactly as
// received (its characters, not the bytes the hex decodes to) and returns the
// signature with its tagged public key.
//
// A Handler fires its Ready channel the first time it produces a response.
// Callers that wait on Ready before submitting inputs get pre-handshake gating;
// the handler itself never blocks anything and enforces no timeout.
package handshake
