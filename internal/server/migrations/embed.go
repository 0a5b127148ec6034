// Package migrations embeds the goose SQL migrations applied to the
// PostgreSQL schema. Schema evolution is explicit and versioned: the core
// social schema, the smart-profile facet tables, and the artifact/export
// tables are separate steps.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
