package ebaycsv

import (
	"math"
	"strings"
	"testing"
	"time"
)

const scenarioCSV = `Order number,Item title,Total price,Sale date,Quantity
1001,Widget,$10.00,2024-01-05,2
,BadRow,$5,2024-01-06,1
1002,Gadget,$20.00,2024-02-01,
`

func TestNormalizeScenario(t *testing.T) {
	batch, err := Normalize(strings.NewReader(scenarioCSV))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch size = %d, want 2 (row without order number dropped)", len(batch))
	}

	want := []Record{
		{
			ListingID: "1001",
			ItemName:  "Widget",
			Price:     10,
			DateSold:  time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			Quantity:  2,
			Source:    "csv",
		},
		{
			ListingID: "1002",
			ItemName:  "Gadget",
			Price:     20,
			DateSold:  time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			Quantity:  1,
			Source:    "csv",
		},
	}
	for i, w := range want {
		if batch[i] != w {
			t.Errorf("batch[%d] = %+v, want %+v", i, batch[i], w)
		}
	}
}

func TestNormalizeValidityGate(t *testing.T) {
	cases := []struct {
		name string
		row  string
	}{
		{"missing order number", `,Widget,$10.00,2024-01-05,1`},
		{"missing item title", `1001,,$10.00,2024-01-05,1`},
		{"missing total price", `1001,Widget,,2024-01-05,1`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := "Order number,Item title,Total price,Sale date,Quantity\n" + tc.row + "\n"
			batch, err := Normalize(strings.NewReader(in))
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if len(batch) != 0 {
				t.Errorf("row must be dropped, got %+v", batch)
			}
		})
	}
}

func TestNormalizeDegradedValues(t *testing.T) {
	in := "Order number,Item title,Total price,Sale date,Quantity\n" +
		"2001,Thing,not-a-price,garbage-date,x\n"
	batch, err := Normalize(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("degraded rows must pass the gate, got %d rows", len(batch))
	}
	rec := batch[0]
	if !math.IsNaN(rec.Price) {
		t.Errorf("price = %v, want NaN", rec.Price)
	}
	if !rec.DateSold.IsZero() {
		t.Errorf("date_sold = %v, want zero time", rec.DateSold)
	}
	if rec.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", rec.Quantity)
	}
}

func TestNormalizeRaggedRow(t *testing.T) {
	in := "Order number,Item title,Total price,Sale date,Quantity\n" +
		"1001,Widget,$10.00,2024-01-05,2\n" +
		"1002,Gadget\n"
	batch, err := Normalize(strings.NewReader(in))
	if err != nil {
		t.Fatalf("truncated row must not fail the import: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("batch size = %d, want 1 (short row dropped, earlier row kept)", len(batch))
	}
	if batch[0].ListingID != "1001" {
		t.Errorf("surviving row = %+v, want listing 1001", batch[0])
	}
}

func TestNormalizeHeaderOnly(t *testing.T) {
	batch, err := Normalize(strings.NewReader("Order number,Item title,Total price,Sale date,Quantity\n"))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if batch == nil || len(batch) != 0 {
		t.Fatalf("header-only file must yield an empty batch, got %v", batch)
	}
}

func TestNormalizeBOM(t *testing.T) {
	in := "\xef\xbb\xbfOrder number,Item title,Total price,Sale date,Quantity\n" +
		"3001,Bolt,$1.50,2024-03-01,4\n"
	batch, err := Normalize(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(batch) != 1 || batch[0].ListingID != "3001" {
		t.Fatalf("BOM-prefixed header must still match columns, got %+v", batch)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$42.50", 42.5},
		{"42.50", 42.5},
		{"$0", 0},
		{" $7.25 ", 7.25},
	}
	for _, tc := range cases {
		if got := ParsePrice(tc.in); got != tc.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	// no thousands-separator handling
	for _, in := range []string{"$1,000.00", "free", ""} {
		if got := ParsePrice(in); !math.IsNaN(got) {
			t.Errorf("ParsePrice(%q) = %v, want NaN", in, got)
		}
	}
}

func TestParseSaleDate(t *testing.T) {
	want := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-01-05", "Jan 5, 2024", "01/05/2024"} {
		if got := ParseSaleDate(in); !got.Equal(want) {
			t.Errorf("ParseSaleDate(%q) = %v, want %v", in, got, want)
		}
	}
	if got := ParseSaleDate("yesterday"); !got.IsZero() {
		t.Errorf("ParseSaleDate(garbage) = %v, want zero time", got)
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"  ", 1},
		{"3", 3},
		{"oops", 1},
	}
	for _, tc := range cases {
		if got := ParseQuantity(tc.in); got != tc.want {
			t.Errorf("ParseQuantity(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
