package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/painting-catalog/internal/metrics"
)

// Querier is the statement surface shared by Session and Tx. Repositories
// depend on it so they run unchanged inside or outside a transaction.
type Querier interface {
	Dialect() Dialect
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session is a scoped handle on one pooled connection. It is created per
// request and closed when the request ends.
type Session struct {
	conn    *sql.Conn
	dialect Dialect
}

func (s *Session) Dialect() Dialect { return s.dialect }

func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer observe("exec", time.Now())
	return s.conn.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer observe("query", time.Now())
	return s.conn.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer observe("query", time.Now())
	return s.conn.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// InTx runs fn inside a transaction on the session's connection. The
// transaction commits when fn returns nil and rolls back otherwise, so
// either every statement issued by fn persists or none does.
func (s *Session) InTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	tx := &Tx{tx: sqlTx, dialect: s.dialect}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = sqlTx.Rollback()
			return
		}
		if cerr := sqlTx.Commit(); cerr != nil {
			err = fmt.Errorf("commit transaction: %w", cerr)
		}
	}()
	return fn(tx)
}

// Close returns the connection to the pool. Closing twice is harmless.
func (s *Session) Close() error {
	if err := s.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

// Tx is a transaction opened by Session.InTx.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) Dialect() Dialect { return t.dialect }

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer observe("exec", time.Now())
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer observe("query", time.Now())
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer observe("query", time.Now())
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

// InsertID executes an INSERT and returns the key generated for idColumn,
// using RETURNING where the dialect needs it and LastInsertId elsewhere.
func InsertID(ctx context.Context, q Querier, query, idColumn string, args ...any) (int64, error) {
	if q.Dialect().Returning() {
		var id int64
		if err := q.QueryRowContext(ctx, query+" RETURNING "+idColumn, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func observe(kind string, start time.Time) {
	metrics.QueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
