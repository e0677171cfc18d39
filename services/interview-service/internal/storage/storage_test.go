package storage

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestErrorClassification(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	unique := &pgconn.PgError{Code: "23505"}
	other := &pgconn.PgError{Code: "23503"}

	if !IsConflict(exclusion) || !IsConflict(unique) {
		t.Fatal("expected exclusion and unique violations to be conflicts")
	}
	if IsConflict(other) || IsConflict(errors.New("x")) {
		t.Fatal("unexpected conflict classification")
	}
	if !IsNotFound(fmt.Errorf("get: %w", pgx.ErrNoRows)) {
		t.Fatal("expected wrapped ErrNoRows to be not found")
	}
}

func TestSchemaCarriesOverlapBackstop(t *testing.T) {
	for _, want := range []string{
		"btree_gist",
		"EXCLUDE USING gist",
		"tstzrange(scheduled_time, end_time, '[)') WITH &&",
		"WHERE (status = 'scheduled')",
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"CREATE TABLE IF NOT EXISTS inbox_events",
	} {
		if !strings.Contains(schema, want) {
			t.Fatalf("schema missing %q", want)
		}
	}
}
