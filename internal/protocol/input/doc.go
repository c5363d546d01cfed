// Package input builds signed contract_input envelopes.
//
// A payload is hex encoded into an InputContainer together with a
// millisecond-timestamp nonce and a max_ledger_seqno bound. The container is
// serialized with encoding/json, whose struct field order makes the bytes
// canonical, and the signature covers exactly those bytes. Both the
// serialized container and the signature travel hex encoded.
//
// The builder is payload-agnostic. The partyline contract's conventions
// ("v0" to view recent records, "m" + text to post) are provided as helpers
// for callers.
package input
