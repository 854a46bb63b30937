// Package db carries the embedded goose migrations so the binary does
// not depend on a migrations directory being present at runtime.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
