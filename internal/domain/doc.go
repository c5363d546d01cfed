// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (keys, identity) and contracts (stores, services,
// the message channel) only.
package domain
