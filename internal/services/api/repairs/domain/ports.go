package domain

import (
	"context"
	"io"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// List returns records ordered by date_sold descending, optionally
	// windowed by a period tag (thisMonth, lastMonth, thisYear)
	List(ctx context.Context, periodTag string) ([]RepairRecord, error)

	// Create validates and inserts one manually entered record
	Create(ctx context.Context, in ManualEntryInput) (CreateResult, error)

	// Import normalizes an eBay CSV export and bulk-upserts it
	Import(ctx context.Context, csv io.Reader) (ImportResult, error)
}
