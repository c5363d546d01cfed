// Package commands defines the partyline CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init         Create or rotate the local signing identity
//   - fingerprint  Print the encoded public key and its fingerprint
//   - connect      Join the party line on a contract server
//   - decode       Decode hex output batches read from stdin
//
// # Implementation
//
// The root command loads defaults, then $HOME/.partyline/config.toml (or
// --config), then flag overrides, and builds the dependency graph before any
// subcommand runs.
package commands
