// Package session runs one client session against a contract server.
//
// A Session owns the per-session protocol state: the handshake handler, the
// input builder, the output decoder with its watermark, and the router that
// connects them. Run is the inbound loop. It takes one message at a time
// from the connection, so watermark updates happen in arrival order. Replies
// (the challenge response) are written back on the same connection and
// decoded output lines go to the session's output writer.
//
// Outbound submissions (Submit, SendMessage, RequestStatus and the liveness
// loop) may run on other goroutines. They share only the read-only identity
// and the connection, whose writes are serialized.
//
// Malformed messages, unknown types and unknown output discriminants are
// logged and skipped. A signing failure, a handshake type mismatch or a
// transport error ends Run.
package session
