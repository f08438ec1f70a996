package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_contributions_live_week"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pgx 23505", dup, true},
		{"wrapped pgx 23505", fmt.Errorf("create contributions: %w", dup), true},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm duplicated key", fmt.Errorf("tx: %w", gorm.ErrDuplicatedKey), true},
		{"message only", errors.New(`ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)`), true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"wrapped not null violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23502"}), false},
		{"plain error", errors.New("connection reset by peer"), false},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Fatalf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
