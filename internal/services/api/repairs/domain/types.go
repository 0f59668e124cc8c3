// Package domain holds the repair record types shared by transport and service
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Provenance tags for the source column
const (
	SourceManual = "manual"
	SourceCSV    = "csv"
)

// Price is a sale amount that may be NaN when the import carried a malformed
// value. It serializes as JSON null in that case since JSON has no NaN.
type Price float64

// MarshalJSON emits null for NaN, the plain number otherwise
func (p Price) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(p)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON accepts null as NaN
func (p *Price) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Price(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// RepairRecord is the sole entity: one logged repair sale.
// ListingID is unique across all records and is the conflict key for import.
type RepairRecord struct {
	ID        string    `json:"id"`
	ItemName  string    `json:"item_name"`
	ListingID string    `json:"listing_id"`
	Price     Price     `json:"price"`
	DateSold  time.Time `json:"date_sold"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// ManualEntryInput mirrors the entry form. Price arrives as text and is
// coerced by the service; quantity defaults to 1 when omitted.
type ManualEntryInput struct {
	ItemName  string `json:"item_name"  validate:"required"`
	ListingID string `json:"listing_id" validate:"required"`
	Price     string `json:"price"      validate:"required"`
	DateSold  string `json:"date_sold"  validate:"required"`
	Quantity  int    `json:"quantity"   validate:"gte=0"`
	Notes     string `json:"notes"`
}

// DefaultForm is the post-submit reset state for the entry form
func DefaultForm() ManualEntryInput {
	return ManualEntryInput{Quantity: 1}
}

// CreateResult carries the stored record plus the reset form state
type CreateResult struct {
	Record RepairRecord     `json:"record"`
	Form   ManualEntryInput `json:"form"`
}

// ImportResult summarizes one CSV import batch. Rows counts the normalized
// rows submitted; rows dropped by the validity gate are not reported.
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Rows     int    `json:"rows"`
	Upserted int    `json:"upserted"`
}
