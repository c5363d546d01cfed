// Package protocol owns the wire contract spoken with the contract server.
//
// Ownership boundary:
//   - message type names and flat JSON message shapes
//   - the error taxonomy shared by the handshake, input, output and router packages
//
// Sub-packages:
//   - handshake: challenge -> challenge_resp
//   - input: signed contract_input envelopes and the stat request
//   - output: contract_output record batches and watermark resume
//   - router: dispatch of inbound messages by type
package protocol
