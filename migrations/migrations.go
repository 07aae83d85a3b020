package migrations

import "embed"

// Postgres holds the schema migrations so the binaries do not depend on the working directory.
//
//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
