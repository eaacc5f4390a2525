// Package migrations embeds the gateway record-store schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
