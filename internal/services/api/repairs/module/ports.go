package module

import (
	"context"
	"io"

	"repairlog/internal/services/api/repairs/domain"
	repairssvc "repairlog/internal/services/api/repairs/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptRepairsPort struct{ svc repairssvc.Service }

// List returns records ordered by date_sold descending for a period tag
func (a adaptRepairsPort) List(ctx context.Context, periodTag string) ([]domain.RepairRecord, error) {
	return a.svc.List(ctx, periodTag)
}

// Create inserts one manually entered record
func (a adaptRepairsPort) Create(ctx context.Context, in domain.ManualEntryInput) (domain.CreateResult, error) {
	return a.svc.Create(ctx, in)
}

// Import normalizes and bulk-upserts an eBay CSV export
func (a adaptRepairsPort) Import(ctx context.Context, csv io.Reader) (domain.ImportResult, error) {
	return a.svc.Import(ctx, csv)
}
