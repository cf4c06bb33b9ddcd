package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrForeignKey marks a statement rejected because a referenced row
	// does not exist.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrDuplicate marks a statement rejected by a primary key or unique
	// constraint.
	ErrDuplicate = errors.New("duplicate key")
)

// Classify maps driver-specific constraint errors onto ErrForeignKey and
// ErrDuplicate. The driver error stays in the chain so its message can be
// shown to the user. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var kind error
	var pqErr *pq.Error
	var myErr *mysql.MySQLError
	var liteErr *sqlite.Error
	switch {
	case errors.As(err, &pqErr):
		switch pqErr.Code.Name() {
		case "foreign_key_violation":
			kind = ErrForeignKey
		case "unique_violation":
			kind = ErrDuplicate
		}
	case errors.As(err, &myErr):
		switch myErr.Number {
		case 1216, 1452:
			kind = ErrForeignKey
		case 1062:
			kind = ErrDuplicate
		}
	case errors.As(err, &liteErr):
		kind = classifySQLite(liteErr)
	}
	if kind == nil {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func classifySQLite(e *sqlite.Error) error {
	switch e.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrForeignKey
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return ErrDuplicate
	}
	if e.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}
	msg := e.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY"):
		return ErrForeignKey
	case strings.Contains(msg, "UNIQUE"):
		return ErrDuplicate
	}
	return nil
}
