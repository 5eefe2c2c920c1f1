// Package migrations embeds the goose schema migrations, one directory per
// dialect.
package migrations

import (
	"embed"

	"github.com/dmitrijs2005/postit/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dir returns the directory inside Migrations holding the dialect's files.
func Dir(d dbx.Dialect) string {
	if d == dbx.DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}
