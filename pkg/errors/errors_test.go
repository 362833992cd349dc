package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:      http.StatusBadRequest,
		CodeUnauthenticated: http.StatusUnauthorized,
		CodeForbidden:       http.StatusForbidden,
		CodeNotFound:        http.StatusNotFound,
		CodeConflict:        http.StatusConflict,
		CodeInvalidState:    http.StatusConflict,
		CodeRateLimited:     http.StatusTooManyRequests,
		CodeInternal:        http.StatusInternalServerError,
		CodeDependency:      http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s: expected status %d got %d", code, status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	if got := MetadataFor(Code("BOGUS")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback, got %d", got)
	}
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	base := New(CodeNotFound, "session not found")
	wrapped := fmt.Errorf("processing attempt: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", typed.Code())
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatal("nil error should not be a unique violation")
	}
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "user_tryon_preferences_user_id_key"}
	wrapped := fmt.Errorf("insert preferences: %w", pgErr)
	if !IsUniqueViolation(wrapped) {
		t.Fatal("expected unique violation to be detected through wrapping")
	}
	if IsUniqueViolation(fmt.Errorf("plain failure")) {
		t.Fatal("plain errors must not match")
	}
}

func TestDumpCollectsChainAndPGFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", TableName: "tryon_sessions", Detail: "duplicate"}
	err := Wrap(CodeConflict, pgErr, "persist session")

	d := Dump(err)
	if d.Code != CodeConflict {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGTable != "tryon_sessions" {
		t.Fatalf("pg fields not extracted: %+v", d)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected unwrap chain, got %v", d.Chain)
	}
}
