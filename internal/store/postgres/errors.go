package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"org-service/internal/store"
)

// mapError maps GORM and PostgreSQL errors to the store sentinel errors.
// Returns the original error when it doesn't match a known condition.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", store.ErrDuplicateKey, pgErr.ConstraintName)

	case pgerrcode.UndefinedTable:
		// Partition operations against a missing table
		return fmt.Errorf("%w: %s", store.ErrNotFound, pgErr.Message)

	default:
		return fmt.Errorf("postgres error [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
	}
}
