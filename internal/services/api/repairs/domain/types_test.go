package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestPriceMarshalsNaNAsNull(t *testing.T) {
	b, err := json.Marshal(Price(math.NaN()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("NaN price = %s, want null", b)
	}

	b, err = json.Marshal(Price(42.5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "42.5" {
		t.Errorf("price = %s, want 42.5", b)
	}
}

func TestPriceUnmarshal(t *testing.T) {
	var p Price
	if err := json.Unmarshal([]byte("null"), &p); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !math.IsNaN(float64(p)) {
		t.Errorf("null price = %v, want NaN", p)
	}
	if err := json.Unmarshal([]byte("19.99"), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p != 19.99 {
		t.Errorf("price = %v, want 19.99", p)
	}
}

func TestRecordWithNaNPriceSerializes(t *testing.T) {
	// a degraded import row must still render as a table row
	b, err := json.Marshal(RepairRecord{ListingID: "1001", Price: Price(math.NaN())})
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	if !strings.Contains(string(b), `"price":null`) {
		t.Errorf("record = %s", b)
	}
}

func TestDefaultForm(t *testing.T) {
	want := ManualEntryInput{
		ItemName:  "",
		ListingID: "",
		Price:     "",
		DateSold:  "",
		Quantity:  1,
		Notes:     "",
	}
	if got := DefaultForm(); got != want {
		t.Errorf("DefaultForm() = %+v, want %+v", got, want)
	}
}
