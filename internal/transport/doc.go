// Package transport provides a websocket implementation of domain.Conn used
// to talk to the contract server.
//
// Each websocket message carries one protocol message. Receive returns
// messages in arrival order and must be called from a single goroutine; Send
// may be called from several, writes are serialized internally. Dial does not
// retry and a dropped connection is reported, not re-established.
//
// Contract servers commonly run with self-signed certificates, so
// Options.InsecureSkipVerify exists for wss:// endpoints during development.
package transport
