package migrations

import "embed"

//go:embed complaints_schema.sql
var Files embed.FS
