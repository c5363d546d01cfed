// Package app wires application dependencies for the CLI.
//
// It loads Config (defaults, then an optional TOML file, then flags), builds
// the identity store and service and the logger, and dials sessions against
// the configured contract server.
package app
