// Package service contains the repair record workflows
package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"repairlog/internal/core/ebaycsv"
	"repairlog/internal/core/period"
	"repairlog/internal/modkit/repokit"
	perr "repairlog/internal/platform/errors"
	"repairlog/internal/platform/logger"
	"repairlog/internal/services/api/repairs/domain"
	"repairlog/internal/services/api/repairs/repo"
)

// Service defines the repairs service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the repairs service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	log    logger.Logger
	now    func() time.Time
}

// New constructs a repairs service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], log logger.Logger) *Svc {
	if db == nil {
		panic("repairs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("repairs.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		log:    log,
		now:    time.Now,
	}
}

// List returns records ordered by date_sold descending, windowed by the
// period tag. A read failure is logged and rendered as an empty list rather
// than surfaced, so the table always loads.
func (s *Svc) List(ctx context.Context, periodTag string) ([]domain.RepairRecord, error) {
	window := period.Bounds(periodTag, s.now())
	recs, err := s.Repo.List(ctx, window)
	if err != nil {
		s.log.Warn().Err(err).Str("period", periodTag).Msg("repairs list read failed, serving empty")
		return []domain.RepairRecord{}, nil
	}
	if recs == nil {
		recs = []domain.RepairRecord{}
	}
	return recs, nil
}

// Create coerces the form input and issues a plain insert. A duplicate
// listing_id surfaces as a conflict from the store; form coercion follows the
// import rules (malformed price and date pass through degraded, not rejected).
func (s *Svc) Create(ctx context.Context, in domain.ManualEntryInput) (domain.CreateResult, error) {
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	rec := domain.RepairRecord{
		ItemName:  in.ItemName,
		ListingID: in.ListingID,
		Price:     domain.Price(ebaycsv.ParsePrice(in.Price)),
		DateSold:  ebaycsv.ParseSaleDate(in.DateSold),
		Quantity:  qty,
		Notes:     in.Notes,
		Source:    domain.SourceManual,
	}

	out, err := s.Repo.Insert(ctx, rec)
	if err != nil {
		return domain.CreateResult{}, err
	}
	return domain.CreateResult{Record: out, Form: domain.DefaultForm()}, nil
}

// Import runs the CSV pipeline: normalize, then bulk-upsert in one batch.
// A store failure aborts the whole import; nothing is reported per row.
func (s *Svc) Import(ctx context.Context, csv io.Reader) (domain.ImportResult, error) {
	batch, err := ebaycsv.Normalize(csv)
	if err != nil {
		return domain.ImportResult{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "malformed csv")
	}

	recs := make([]domain.RepairRecord, 0, len(batch))
	for _, row := range batch {
		recs = append(recs, domain.RepairRecord{
			ItemName:  row.ItemName,
			ListingID: row.ListingID,
			Price:     domain.Price(row.Price),
			DateSold:  row.DateSold,
			Quantity:  row.Quantity,
			Source:    domain.SourceCSV,
		})
	}

	batchID := uuid.NewString()
	n, err := s.Repo.UpsertBatch(ctx, recs)
	if err != nil {
		s.log.Error().Err(err).Str("batch_id", batchID).Int("rows", len(recs)).Msg("csv import upsert failed")
		return domain.ImportResult{}, err
	}

	s.log.Info().Str("batch_id", batchID).Int("rows", len(recs)).Int("upserted", n).Msg("csv import complete")
	return domain.ImportResult{BatchID: batchID, Rows: len(recs), Upserted: n}, nil
}
