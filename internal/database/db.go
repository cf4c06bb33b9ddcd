// Package database opens the catalog connection pool and hands out scoped
// sessions. Queries are written with '?' placeholders and rebound for the
// active dialect.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/painting-catalog/internal/config"
)

// DB is the process-wide connection pool. Request code never uses it
// directly; it acquires a Session instead.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects to the database described by c and verifies the connection.
func Open(ctx context.Context, c config.Credentials) (*DB, error) {
	d, err := ParseDialect(c.Dialect)
	if err != nil {
		return nil, err
	}
	dsn, err := dataSourceName(d, c)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db, dialect: d}, nil
}

// Wrap adopts an already opened pool, mainly for tests.
func Wrap(db *sql.DB, d Dialect) *DB {
	return &DB{DB: db, dialect: d}
}

// Dialect reports the SQL dialect of the pool.
func (db *DB) Dialect() Dialect { return db.dialect }

// Session reserves one pooled connection for the caller. The session must be
// closed when the caller is done, whatever the outcome.
func (db *DB) Session(ctx context.Context) (*Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire session: %w", err)
	}
	return &Session{conn: conn, dialect: db.dialect}, nil
}

func dataSourceName(d Dialect, c config.Credentials) (string, error) {
	switch d {
	case MySQL:
		mc := mysql.NewConfig()
		mc.User = c.Username
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		mc.DBName = c.Database
		mc.ParseTime = true
		mc.Loc = time.UTC
		// setup scripts are executed as one batch
		mc.MultiStatements = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN(), nil
	case Postgres:
		sslmode := c.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.Username, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:     "/" + c.Database,
			RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
		}
		return u.String(), nil
	case SQLite:
		return SQLiteDSN(c.Database), nil
	}
	return "", fmt.Errorf("unsupported dialect %q", d)
}

// SQLiteDSN returns a modernc.org/sqlite DSN for the database file at path
// with foreign keys enforced on every connection.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
