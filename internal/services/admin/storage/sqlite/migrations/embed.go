// Package migrations embeds the admin SQLite schema and demo seed data.
package migrations

import "embed"

// SeedRoot is the directory holding optional demo data migrations.
const SeedRoot = "seed"

// FS holds the ordered schema migrations at its root and demo data under
// SeedRoot.
//
//go:embed *.sql seed/*.sql
var FS embed.FS
