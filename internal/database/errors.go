package database

import (
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE class 23 is "integrity constraint violation"
const pgConstraintClass = "23"

// ErrorCode extracts the driver specific code of a database error: the
// SQLSTATE for lib/pq and pgx, the extended result code for sqlite.
// It returns "" for errors that did not come from a driver.
func ErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strconv.Itoa(liteErr.Code())
	}
	return ""
}

// IsConstraintViolation reports whether err is a unique, foreign key, not-null or check violation
func IsConstraintViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	code := ErrorCode(err)
	return len(code) == 5 && code[:2] == pgConstraintClass
}
