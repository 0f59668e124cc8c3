//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"repairlog/internal/core/period"
	perr "repairlog/internal/platform/errors"
	"repairlog/internal/platform/store"
	"repairlog/internal/services/api/repairs/domain"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const repairsDDL = `
create table if not exists repairs (
	id         uuid primary key default gen_random_uuid(),
	item_name  text not null,
	listing_id text not null unique,
	price      double precision,
	date_sold  timestamptz not null,
	quantity   int not null default 1,
	notes      text not null default '',
	source     text not null,
	created_at timestamptz not null default now()
)`

func newTestRepo(t *testing.T, ctx context.Context, dsn string) Repo {
	t.Helper()

	st, err := store.Open(ctx, store.Config{
		AppName: "repairlog-repo-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, repairsDDL); err != nil {
		t.Fatalf("create repairs table: %v", err)
	}
	return NewPG().Bind(st.PG)
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertBatch_Integration_RoundTrip(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r := newTestRepo(t, ctx, dsn)

	// initial import
	n, err := r.UpsertBatch(ctx, []domain.RepairRecord{
		{ItemName: "Widget", ListingID: "1001", Price: 10, DateSold: day(5), Quantity: 2, Source: "csv"},
		{ItemName: "Gadget", ListingID: "1002", Price: 20, DateSold: day(6), Quantity: 1, Source: "csv"},
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if n != 2 {
		t.Fatalf("first upsert affected %d rows, want 2", n)
	}

	// re-import with a changed row and an in-batch duplicate of the same key
	n, err = r.UpsertBatch(ctx, []domain.RepairRecord{
		{ItemName: "Widget old", ListingID: "1001", Price: 11, DateSold: day(5), Quantity: 2, Source: "csv"},
		{ItemName: "Widget v2", ListingID: "1001", Price: 12.5, DateSold: day(7), Quantity: 3, Source: "csv"},
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if n != 1 {
		t.Fatalf("second upsert affected %d rows, want 1 after collapse", n)
	}

	recs, err := r.List(ctx, period.Range{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("record count = %d, want 2 (no duplicates)", len(recs))
	}
	// ordered by date_sold desc, so the rewritten 1001 row comes first
	if recs[0].ListingID != "1001" || recs[0].ItemName != "Widget v2" || recs[0].Price != 12.5 {
		t.Fatalf("recs[0] = %+v, want the later 1001 values", recs[0])
	}
	if recs[0].ID == "" || recs[0].CreatedAt.IsZero() {
		t.Fatalf("store-assigned columns missing: %+v", recs[0])
	}
}

func TestInsert_Integration_DuplicateListingConflicts(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r := newTestRepo(t, ctx, dsn)

	rec := domain.RepairRecord{
		ItemName: "Screen swap", ListingID: "L-1", Price: 19.99,
		DateSold: day(10), Quantity: 1, Notes: "walk-in", Source: "manual",
	}
	stored, err := r.Insert(ctx, rec)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("insert must return the store-assigned id")
	}

	_, err = r.Insert(ctx, rec)
	if perr.CodeOf(err) != perr.ErrorCodeDuplicateKey {
		t.Fatalf("want duplicate key conflict, got %v", err)
	}
}

func TestList_Integration_PeriodWindow(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r := newTestRepo(t, ctx, dsn)

	seed := []domain.RepairRecord{
		{ItemName: "Jan", ListingID: "j-1", Price: 1, DateSold: day(15), Quantity: 1, Source: "csv"},
		{ItemName: "Feb", ListingID: "f-1", Price: 2, DateSold: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), Quantity: 1, Source: "csv"},
		{ItemName: "Mar", ListingID: "m-1", Price: 3, DateSold: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), Quantity: 1, Source: "csv"},
	}
	if _, err := r.UpsertBatch(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	recs, err := r.List(ctx, period.Bounds(period.LastMonth, now))
	if err != nil {
		t.Fatalf("list lastMonth: %v", err)
	}
	if len(recs) != 1 || recs[0].ListingID != "f-1" {
		t.Fatalf("lastMonth window returned %+v, want only the February row", recs)
	}

	recs, err = r.List(ctx, period.Bounds(period.ThisYear, now))
	if err != nil {
		t.Fatalf("list thisYear: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("thisYear returned %d rows, want 3", len(recs))
	}
	// descending by date_sold
	if recs[0].ListingID != "m-1" || recs[2].ListingID != "j-1" {
		t.Fatalf("ordering wrong: %+v", recs)
	}
}
