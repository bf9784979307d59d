package repos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInstrumentNotFound is returned when a symbol has no Instruments row.
var ErrInstrumentNotFound = errors.New("instrument not found")

// ConstraintError is returned when the store rejects a row: integrity
// violations (SQLSTATE class 23) and data exceptions such as an over-long
// value (class 22).
type ConstraintError struct {
	Code       string
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("store rejected row (%s, %s): %v", e.Code, e.Constraint, e.Err)
	}
	return fmt.Sprintf("store rejected row (%s): %v", e.Code, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrInstrumentNotFound)
}

func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "23") || strings.HasPrefix(pgErr.Code, "22")) {
		return &ConstraintError{Code: pgErr.Code, Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}
