package core

import (
	"testing"
	"time"
)

var testTime = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func rec(id, country, company string, p Priority, created time.Time) Record {
	return Record{
		ID: id, Country: country, CompanyName: company, Sector: "Technology",
		InterestStatus: InterestYes, Priority: p, ActionNote: "note",
		FollowUpStatus: FollowUpNone, CreatedAt: created,
	}
}

func TestSearchFilters_PriorityAndCountry(t *testing.T) {
	records := []Record{
		rec("1", "Germany", "A", PriorityHigh, testTime),
		rec("2", "Germany", "B", PriorityHigh, testTime),
		rec("3", "Germany", "C", PriorityHigh, testTime),
		rec("4", "Germany", "D", PriorityLow, testTime),
		rec("5", "Germany", "E", PriorityLow, testTime),
		rec("6", "Qatar", "F", PriorityHigh, testTime),
	}

	got := Filter(records, SearchFilters{Priority: PriorityHigh, Country: "Germany"})
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	for _, r := range got {
		if r.Priority != PriorityHigh || r.Country != "Germany" {
			t.Errorf("unexpected match %+v", r)
		}
	}
}

func TestSearchFilters_Match(t *testing.T) {
	r := rec("1", "Germany", "Acme Trading GmbH", PriorityMedium, testTime)

	tests := []struct {
		name   string
		filter SearchFilters
		want   bool
	}{
		{"empty filter matches", SearchFilters{}, true},
		{"term is case insensitive", SearchFilters{Term: "TRADING"}, true},
		{"term is trimmed", SearchFilters{Term: "  acme "}, true},
		{"term mismatch", SearchFilters{Term: "globex"}, false},
		{"country exact", SearchFilters{Country: "Germany"}, true},
		{"country is not substring", SearchFilters{Country: "Germ"}, false},
		{"sector mismatch", SearchFilters{Sector: "Food"}, false},
		{"date from same day", SearchFilters{DateFrom: time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)}, true},
		{"date from next day", SearchFilters{DateFrom: time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)}, false},
		{"date to includes whole day", SearchFilters{DateTo: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}, true},
		{"date to previous day", SearchFilters{DateTo: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)}, false},
		{"all clauses", SearchFilters{Term: "acme", Country: "Germany", Sector: "Technology", Priority: PriorityMedium}, true},
		{"one failing clause", SearchFilters{Term: "acme", Country: "Germany", Priority: PriorityHigh}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(r); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchFilters_IsEmpty(t *testing.T) {
	if !(SearchFilters{Term: "  "}).IsEmpty() {
		t.Error("blank term should be empty")
	}
	if (SearchFilters{Sector: "Food"}).IsEmpty() {
		t.Error("sector filter should not be empty")
	}
}

func TestFilter_SubsetOfInput(t *testing.T) {
	records := []Record{
		rec("1", "Germany", "A", PriorityHigh, testTime),
		rec("2", "Qatar", "B", PriorityLow, testTime),
	}
	got := Filter(records, SearchFilters{})
	if len(got) != len(records) {
		t.Errorf("empty filter returned %d of %d", len(got), len(records))
	}
	if got := Filter(nil, SearchFilters{Country: "X"}); len(got) != 0 {
		t.Errorf("Filter(nil) = %v", got)
	}
}
