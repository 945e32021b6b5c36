package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUniqueViolation is returned when an insert loses the race against a
// storage-level uniqueness constraint. The constraint, not the
// application pre-check, is the durable source of truth for duplicates.
var ErrUniqueViolation = errors.New("unique constraint violation")

const pgUniqueViolationCode = "23505"

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return ErrUniqueViolation
	}
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
