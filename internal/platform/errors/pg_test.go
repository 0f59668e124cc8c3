package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func dup(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

func TestFromPostgresDuplicateKey(t *testing.T) {
	err := FromPostgres(dup("repairs_listing_id_key"), "insert repair")
	if CodeOf(err) != ErrorCodeDuplicateKey {
		t.Fatalf("code = %v, want duplicate key", CodeOf(err))
	}
	if !IsDuplicateKey(err) {
		t.Error("IsDuplicateKey must see through the wrap")
	}
	if HTTPStatus(err) != 409 {
		t.Errorf("status = %d, want 409", HTTPStatus(err))
	}
}

func TestFromPostgresWithFieldAttachesConstraintColumn(t *testing.T) {
	err := FromPostgresWithField(dup("repairs_listing_id_key"), "insert repair")
	e, ok := As(err)
	if !ok {
		t.Fatalf("want *Error, got %T", err)
	}
	if e.Field() != "listing_id" {
		t.Errorf("field = %q, want listing_id", e.Field())
	}
}

func TestFromPostgresPassthroughNonPg(t *testing.T) {
	orig := fmt.Errorf("dial tcp: connection refused")
	err := FromPostgres(orig, "list repairs")
	if CodeOf(err) != ErrorCodeDB {
		t.Errorf("code = %v, want generic db", CodeOf(err))
	}
	if FromPostgres(nil, "noop") != nil {
		t.Error("nil must stay nil")
	}
}
