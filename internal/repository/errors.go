package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinels surfaced by multi-step transactions where a plain RowsAffected
// check cannot tell the service which guard failed.
var (
	ErrBidNotPending       = errors.New("bid is not pending")
	ErrTaskAlreadyAssigned = errors.New("task is already assigned")
	ErrPaymentNotCompleted = errors.New("payment is not completed")
)

// IsUniqueViolation classifies duplicate-key failures across both drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "23505")
}
