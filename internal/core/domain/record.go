package domain

import "time"

// Record is a matched label/data pair representing one observation unit.
// Files holds remote paths, label first. A record is immutable once built.
type Record struct {
	Key       string
	DateStart time.Time
	DateEnd   time.Time
	Files     []string
}

// Overlaps reports whether the record's coverage interval intersects
// [start, end]. A zero bound is unconstrained.
func (r Record) Overlaps(start, end time.Time) bool {
	if !start.IsZero() && r.DateEnd.Before(start) {
		return false
	}
	if !end.IsZero() && r.DateStart.After(end) {
		return false
	}
	return true
}

// FilterByDate returns the records whose coverage overlaps [start, end].
// The input slice is not modified.
func FilterByDate(recs []Record, start, end time.Time) []Record {
	var out []Record
	for _, r := range recs {
		if r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out
}
