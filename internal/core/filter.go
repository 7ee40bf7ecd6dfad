package core

import (
	"strings"
	"time"
)

// SearchFilters is a conjunctive filter over customers. Zero-valued fields
// impose no constraint.
type SearchFilters struct {
	Term     string    `json:"searchTerm,omitempty"` // case-insensitive substring of company name
	Country  string    `json:"country,omitempty"`
	Sector   string    `json:"sector,omitempty"`
	Priority Priority  `json:"priority,omitempty"`
	DateFrom time.Time `json:"dateFrom,omitzero"`
	DateTo   time.Time `json:"dateTo,omitzero"` // inclusive calendar day
}

// IsEmpty reports whether f imposes no constraint at all.
func (f SearchFilters) IsEmpty() bool {
	return strings.TrimSpace(f.Term) == "" && f.Country == "" && f.Sector == "" &&
		f.Priority == "" && f.DateFrom.IsZero() && f.DateTo.IsZero()
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// UpperBound returns the exclusive upper bound for DateTo: the start of the
// following day.
func (f SearchFilters) UpperBound() time.Time {
	return DayStart(f.DateTo).AddDate(0, 0, 1)
}

// Match reports whether r satisfies every clause of f.
func (f SearchFilters) Match(r Record) bool {
	if term := strings.TrimSpace(f.Term); term != "" {
		if !strings.Contains(strings.ToLower(r.CompanyName), strings.ToLower(term)) {
			return false
		}
	}
	if f.Country != "" && r.Country != f.Country {
		return false
	}
	if f.Sector != "" && r.Sector != f.Sector {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if !f.DateFrom.IsZero() && r.CreatedAt.Before(DayStart(f.DateFrom)) {
		return false
	}
	if !f.DateTo.IsZero() && !r.CreatedAt.Before(f.UpperBound()) {
		return false
	}
	return true
}

// Filter returns the records matching f, keeping their order.
func Filter(records []Record, f SearchFilters) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
