package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a lookup or single-row mutation matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrUniqueViolation is returned when an insert or update hits a unique index.
	ErrUniqueViolation = errors.New("unique constraint violation")
)

// UniqueViolationError names the column whose unique index was violated.
type UniqueViolationError struct {
	Column string
	Err    error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint violation on %s: %v", e.Column, e.Err)
}

func (e *UniqueViolationError) Unwrap() error { return e.Err }

func (e *UniqueViolationError) Is(target error) bool { return target == ErrUniqueViolation }

// ViolatedColumn returns the column of a unique violation, or "" when err is
// not one.
func ViolatedColumn(err error) string {
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return uv.Column
	}
	return ""
}

// translate maps driver errors onto the repository sentinels. columns lists
// the uniquely indexed columns of the table, most specific first.
func translate(err error, op string, columns ...string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if detail, ok := uniqueViolation(err); ok {
		column := "unknown"
		for _, c := range columns {
			if strings.Contains(detail, c) {
				column = c
				break
			}
		}
		return fmt.Errorf("%s: %w", op, &UniqueViolationError{Column: column, Err: err})
	}
	return fmt.Errorf("%s: %w", op, err)
}

// uniqueViolation detects unique index failures from PostgreSQL (SQLSTATE
// 23505) and SQLite, returning the constraint detail.
func uniqueViolation(err error) (string, bool) {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		if pgErr.Field('C') == "23505" {
			return pgErr.Field('n') + " " + pgErr.Field('D'), true
		}
		return "", false
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return msg, true
	}
	return "", false
}

// expectOne converts a zero rows-affected result into ErrNotFound.
func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
