// Package storage defines persistence contracts for the admin dashboard.
//
// Handlers depend on these interfaces so dashboard and user views stay
// testable without a concrete SQLite schema.
package storage
