package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBoundsLastMonth(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	r := Bounds(LastMonth, now)

	if !r.HasStart || !r.HasEnd {
		t.Fatalf("lastMonth must carry both bounds, got %+v", r)
	}
	if want := date(2024, time.February, 1); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	// day 0 of March resolves to Feb 29 in a leap year
	if want := date(2024, time.February, 29); !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}

func TestBoundsThisMonth(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	r := Bounds(ThisMonth, now)

	if !r.HasStart || r.HasEnd {
		t.Fatalf("thisMonth must carry a start bound only, got %+v", r)
	}
	if want := date(2024, time.March, 1); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
}

func TestBoundsThisYear(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	r := Bounds(ThisYear, now)

	if !r.HasStart || r.HasEnd {
		t.Fatalf("thisYear must carry a start bound only, got %+v", r)
	}
	if want := date(2024, time.January, 1); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
}

func TestBoundsJanuaryRollsYear(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	r := Bounds(LastMonth, now)

	if want := date(2023, time.December, 1); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	if want := date(2023, time.December, 31); !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}

func TestBoundsUnknownTag(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	for _, tag := range []string{"", "today", "last_month", "THISMONTH"} {
		if r := Bounds(tag, now); r.HasStart || r.HasEnd {
			t.Errorf("tag %q must apply no filter, got %+v", tag, r)
		}
	}
}
