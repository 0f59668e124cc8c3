// Package period computes calendar date-range shortcuts for listing queries.
// A tag names a precomputed range relative to "now"; unknown tags mean no filter.
package period

import "time"

// Known period tags
const (
	ThisMonth = "thisMonth"
	LastMonth = "lastMonth"
	ThisYear  = "thisYear"
)

// Range is an inclusive date window. HasStart/HasEnd gate which bounds apply;
// an all-false Range is an unbounded query.
type Range struct {
	Start    time.Time
	End      time.Time
	HasStart bool
	HasEnd   bool
}

// Bounds resolves a period tag against now using calendar-month arithmetic.
// Only lastMonth carries an end bound; the end is the last day of the previous
// month at midnight (day 0 of the current month), inclusive.
func Bounds(tag string, now time.Time) Range {
	y, m, _ := now.Date()
	loc := now.Location()

	switch tag {
	case ThisMonth:
		return Range{
			Start:    time.Date(y, m, 1, 0, 0, 0, 0, loc),
			HasStart: true,
		}
	case LastMonth:
		return Range{
			Start:    time.Date(y, m-1, 1, 0, 0, 0, 0, loc),
			End:      time.Date(y, m, 0, 0, 0, 0, 0, loc),
			HasStart: true,
			HasEnd:   true,
		}
	case ThisYear:
		return Range{
			Start:    time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
			HasStart: true,
		}
	}
	return Range{}
}
