// Package schema ships the setup scripts for every supported dialect. The
// catalogctl setup command reads them from disk; tests use the embedded copy.
package schema

import (
	"embed"
	"io/fs"
)

// Script names, executed in this order by setup.
const (
	CreateTables = "create_tables.sql"
	SampleData   = "sample_data.sql"
)

//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var files embed.FS

// Files returns the scripts of one dialect directory (postgres, mysql or sqlite).
func Files(dialect string) (fs.FS, error) {
	return fs.Sub(files, dialect)
}
