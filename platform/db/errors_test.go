package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "statuses_name_key"})

	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected unique violation")
	}
	if !IsUniqueViolation(err, "statuses_name_key") {
		t.Fatalf("expected unique violation for named constraint")
	}
	if IsUniqueViolation(err, "other_key") {
		t.Fatalf("expected no match for a different constraint")
	}
	if IsUniqueViolation(errors.New("boom"), "") {
		t.Fatalf("plain errors are not unique violations")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "leads_status_id_fkey"}
	if !IsForeignKeyViolation(err, "leads_status_id_fkey") {
		t.Fatalf("expected foreign key violation")
	}
	if IsUniqueViolation(err, "") {
		t.Fatalf("foreign key violation must not match unique violation")
	}
}
