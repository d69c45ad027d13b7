package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches a lookup, update or delete.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidReference is returned when a write violates a foreign key.
	ErrInvalidReference = errors.New("invalid reference")
)

// PostgreSQL SQLSTATE codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// ConstraintError describes a store constraint violation. It unwraps to
// ErrDuplicate or ErrInvalidReference so callers can use errors.Is.
type ConstraintError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%v (%s): %v", e.Kind, e.Constraint, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// ViolatedConstraint returns the constraint (or, for SQLite, the failing
// column list) named by a constraint violation, or "" for other errors.
func ViolatedConstraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// mapError translates driver errors from pgx, lib/pq and SQLite into the
// package sentinels. Errors without a mapping are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return &ConstraintError{Kind: ErrDuplicate, Constraint: pgErr.ConstraintName, Err: err}
		case foreignKeyViolationCode:
			return &ConstraintError{Kind: ErrInvalidReference, Constraint: pgErr.ConstraintName, Err: err}
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case uniqueViolationCode:
			return &ConstraintError{Kind: ErrDuplicate, Constraint: pqErr.Constraint, Err: err}
		case foreignKeyViolationCode:
			return &ConstraintError{Kind: ErrInvalidReference, Constraint: pqErr.Constraint, Err: err}
		}
		return err
	}

	// SQLite reports constraint failures only through the message text,
	// e.g. "UNIQUE constraint failed: categories.display_order".
	msg := err.Error()
	if i := strings.Index(msg, "UNIQUE constraint failed"); i >= 0 {
		detail := strings.TrimSpace(strings.TrimPrefix(msg[i:], "UNIQUE constraint failed:"))
		return &ConstraintError{Kind: ErrDuplicate, Constraint: detail, Err: err}
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &ConstraintError{Kind: ErrInvalidReference, Err: err}
	}
	return err
}
