// Package repo provides postgres access for repair records
package repo

import (
	"context"
	"fmt"
	"strings"

	"repairlog/internal/core/period"
	"repairlog/internal/modkit/repokit"
	perr "repairlog/internal/platform/errors"
	"repairlog/internal/services/api/repairs/domain"
)

// Repo is the minimal persistence surface for repair records
type Repo interface {
	List(ctx context.Context, window period.Range) ([]domain.RepairRecord, error)
	Insert(ctx context.Context, rec domain.RepairRecord) (domain.RepairRecord, error)
	UpsertBatch(ctx context.Context, recs []domain.RepairRecord) (int, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const recordColumns = `id, item_name, listing_id, price, date_sold, quantity, notes, source, created_at`

func (r *queries) List(ctx context.Context, window period.Range) ([]domain.RepairRecord, error) {
	// nil bound params disable the corresponding predicate
	sql := `
select ` + recordColumns + `
from repairs
where ($1::timestamptz is null or date_sold >= $1)
and ($2::timestamptz is null or date_sold <= $2)
order by date_sold desc, created_at desc
`
	var start, end any
	if window.HasStart {
		start = window.Start
	}
	if window.HasEnd {
		end = window.End
	}

	rows, err := r.q.Query(ctx, sql, start, end)
	if err != nil {
		return nil, perr.FromPostgres(err, "list repairs")
	}
	defer rows.Close()

	var out []domain.RepairRecord
	for rows.Next() {
		var rec domain.RepairRecord
		if err := rows.Scan(
			&rec.ID, &rec.ItemName, &rec.ListingID, &rec.Price,
			&rec.DateSold, &rec.Quantity, &rec.Notes, &rec.Source, &rec.CreatedAt,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan repair row")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "list repairs")
	}
	return out, nil
}

func (r *queries) Insert(ctx context.Context, rec domain.RepairRecord) (domain.RepairRecord, error) {
	// plain insert, not upsert: a duplicate listing_id must surface as a conflict
	const sql = `
insert into repairs (item_name, listing_id, price, date_sold, quantity, notes, source)
values ($1, $2, $3, $4, $5, $6, $7)
returning id, created_at
`
	row := r.q.QueryRow(ctx, sql,
		rec.ItemName, rec.ListingID, float64(rec.Price), rec.DateSold,
		rec.Quantity, rec.Notes, rec.Source,
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return domain.RepairRecord{}, perr.FromPostgresWithField(err, "insert repair")
	}
	return rec, nil
}

// UpsertBatch writes the batch in one statement with listing_id as the
// conflict key. Postgres rejects touching the same key twice in a single
// insert, so duplicate listing_ids are collapsed last-wins before the write.
// An empty batch is a no-op success.
func (r *queries) UpsertBatch(ctx context.Context, recs []domain.RepairRecord) (int, error) {
	recs = collapseLastWins(recs)
	if len(recs) == 0 {
		return 0, nil
	}

	var (
		sb   strings.Builder
		args = make([]any, 0, len(recs)*7)
	)
	sb.WriteString(`insert into repairs (item_name, listing_id, price, date_sold, quantity, notes, source) values `)
	for i, rec := range recs {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args,
			rec.ItemName, rec.ListingID, float64(rec.Price), rec.DateSold,
			rec.Quantity, rec.Notes, rec.Source,
		)
	}
	sb.WriteString(`
on conflict (listing_id) do update set
item_name = excluded.item_name,
price = excluded.price,
date_sold = excluded.date_sold,
quantity = excluded.quantity,
notes = excluded.notes,
source = excluded.source`)

	tag, err := r.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, perr.FromPostgres(err, "bulk upsert repairs")
	}
	return int(tag.RowsAffected()), nil
}

// collapseLastWins keeps one row per listing_id, the later occurrence winning,
// with batch order preserved at the first occurrence's position
func collapseLastWins(recs []domain.RepairRecord) []domain.RepairRecord {
	if len(recs) < 2 {
		return recs
	}
	idx := make(map[string]int, len(recs))
	out := recs[:0:0]
	for _, rec := range recs {
		if at, seen := idx[rec.ListingID]; seen {
			out[at] = rec
			continue
		}
		idx[rec.ListingID] = len(out)
		out = append(out, rec)
	}
	return out
}
