package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"org-service/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, store.ErrNotFound},
		{
			"unique violation",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_organizations_organization_name"},
			store.ErrDuplicateKey,
		},
		{
			"wrapped unique violation",
			fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}),
			store.ErrDuplicateKey,
		},
		{
			"undefined table",
			&pgconn.PgError{Code: pgerrcode.UndefinedTable, Message: `relation "org_gone" does not exist`},
			store.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("mapError = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("mapError = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapError_UnknownPassesThrough(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection refused")
	if got := mapError(plain); got != plain {
		t.Fatalf("mapError rewrote a non-postgres error: %v", got)
	}

	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure, Message: "could not serialize"}
	got := mapError(pgErr)
	if !errors.Is(got, pgErr) {
		t.Fatalf("original error not wrapped: %v", got)
	}
	if errors.Is(got, store.ErrDuplicateKey) || errors.Is(got, store.ErrNotFound) {
		t.Fatalf("unexpected sentinel mapping: %v", got)
	}
}
