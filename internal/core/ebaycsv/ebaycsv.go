// Package ebaycsv normalizes eBay order-history CSV exports into repair sale
// records. Rows missing any of the three required columns are dropped without
// comment; malformed prices and dates are carried through degraded (NaN price,
// zero-time sale date) rather than rejected.
package ebaycsv

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source is the provenance tag stamped on every imported record
const Source = "csv"

// Record is one normalized batch entry, keyed by ListingID for upsert.
// Price may be NaN and DateSold may be the zero time when the export carried
// garbage in those columns.
type Record struct {
	ListingID string
	ItemName  string
	Price     float64
	DateSold  time.Time
	Quantity  int
	Source    string
}

// rawRow mirrors the eBay export header verbatim; everything arrives as text
type rawRow struct {
	OrderNumber string `csv:"Order number"`
	ItemTitle   string `csv:"Item title"`
	TotalPrice  string `csv:"Total price"`
	SaleDate    string `csv:"Sale date"`
	Quantity    string `csv:"Quantity"`
}

// sale date layouts seen in eBay exports, tried in order
var saleDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"Jan-02-06",
	"01/02/2006",
}

// Normalize parses an eBay CSV export and returns the batch to upsert,
// input order preserved with invalid rows removed. A header-only file yields
// an empty non-nil batch. Only tokenizer-level failures return an error.
func Normalize(r io.Reader) ([]Record, error) {
	rows := []rawRow{}
	if err := gocsv.UnmarshalCSV(newReader(r), &rows); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := normalizeRow(row)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// newReader builds the tokenizer: BOM tolerant, lazy quotes, first row is the header
func newReader(r io.Reader) *csv.Reader {
	dec := unicode.UTF8.NewDecoder()
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(dec)))
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	// ragged rows decode with empty trailing fields and hit the validity gate
	cr.FieldsPerRecord = -1
	return cr
}

// normalizeRow applies the validity gate then maps columns. ok=false means drop.
func normalizeRow(row rawRow) (Record, bool) {
	if row.OrderNumber == "" || row.ItemTitle == "" || row.TotalPrice == "" {
		return Record{}, false
	}
	return Record{
		ListingID: row.OrderNumber,
		ItemName:  row.ItemTitle,
		Price:     ParsePrice(row.TotalPrice),
		DateSold:  ParseSaleDate(row.SaleDate),
		Quantity:  ParseQuantity(row.Quantity),
		Source:    Source,
	}, true
}

// ParsePrice strips a leading currency symbol and parses the remainder.
// Malformed text yields NaN, not an error; thousands separators are not handled.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseSaleDate tries the known export layouts; unparseable input yields the
// zero time as a sentinel rather than an error
func ParseSaleDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ParseQuantity parses the quantity column, defaulting to 1 when absent or unparseable
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return n
}
