package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
)

const pgUniqueViolation = "23505"

// IsNotFound reports a missing row, whatever layer wrapped it.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// mapWriteError turns a Postgres unique violation into the given business code.
func mapWriteError(err error, duplicateCode string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return httperr.ErrBusiness(duplicateCode)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(duplicateCode)
	}
	return err
}
