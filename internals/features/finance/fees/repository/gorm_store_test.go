package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection refused")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "not found", in: gorm.ErrRecordNotFound, want: ErrNotFound},
		{name: "wrapped not found", in: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), want: ErrNotFound},
		{name: "email", in: &pgconn.PgError{Code: "23505", ConstraintName: "idx_accounts_email"}, want: ErrDuplicateEmail},
		{name: "usn", in: &pgconn.PgError{Code: "23505", ConstraintName: "idx_accounts_registration_number"}, want: ErrDuplicateRegistrationNumber},
		{name: "txn", in: &pgconn.PgError{Code: "23505", ConstraintName: "idx_payments_transaction_id"}, want: ErrDuplicateTransactionID},
		{name: "other constraint", in: &pgconn.PgError{Code: "23503", ConstraintName: "fk_payments_student"}},
		{name: "other error", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.want == nil && tt.in != nil {
				if got != tt.in {
					t.Fatalf("got %v, want passthrough", got)
				}
				return
			}
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
