// Package setup bootstraps the catalog database from SQL scripts.
package setup

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"
)

// Execer runs a script. *sql.DB and *database.DB both satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Run executes each named script from fsys in the given order, one script
// per call. It stops at the first script that is missing or fails; scripts
// after it are not executed and nothing is retried.
func Run(ctx context.Context, db Execer, fsys fs.FS, logger *zap.Logger, files ...string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, name := range files {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			logger.Error("setup script unreadable", zap.String("file", name), zap.Error(err))
			return fmt.Errorf("read %s: %w", name, err)
		}
		start := time.Now()
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			logger.Error("setup script failed", zap.String("file", name), zap.Error(err))
			return fmt.Errorf("execute %s: %w", name, err)
		}
		logger.Info("setup script executed",
			zap.String("file", name),
			zap.Duration("took", time.Since(start)),
		)
	}
	return nil
}
