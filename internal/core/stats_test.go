package core

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	records := []Record{
		rec("1", "Germany", "A", PriorityHigh, now.AddDate(0, 0, -1)),
		rec("2", "Germany", "B", PriorityLow, now.AddDate(0, -1, 0)),
		rec("3", "Qatar", "C", PriorityHigh, now.AddDate(0, -2, 0)),
		rec("4", "Austria", "D", PriorityMedium, now.AddDate(-1, 0, 0)),
	}
	records[1].InterestStatus = InterestNo
	records[2].FollowUpStatus = FollowUpFirst
	records[3].Sector = "Food"

	s := Summarize(records, now)

	if s.Total != 4 || s.Interested != 3 || s.HighPriority != 2 || s.InFollowUp != 1 {
		t.Errorf("totals = %+v", s)
	}
	if s.DistinctCountries != 3 || s.DistinctSectors != 2 {
		t.Errorf("distinct = %d/%d", s.DistinctCountries, s.DistinctSectors)
	}

	wantCountries := []Count{{"Germany", 2}, {"Austria", 1}, {"Qatar", 1}}
	if len(s.Countries) != len(wantCountries) {
		t.Fatalf("countries = %v", s.Countries)
	}
	for i, c := range wantCountries {
		if s.Countries[i] != c {
			t.Errorf("countries[%d] = %v, want %v", i, s.Countries[i], c)
		}
	}

	if s.Priorities[0] != (Count{"high", 2}) || s.Priorities[1] != (Count{"medium", 1}) || s.Priorities[2] != (Count{"low", 1}) {
		t.Errorf("priorities = %v", s.Priorities)
	}

	if len(s.Monthly) != 6 {
		t.Fatalf("monthly buckets = %d", len(s.Monthly))
	}
	if s.Monthly[0].Month != "2024-01" || s.Monthly[5].Month != "2024-06" {
		t.Errorf("monthly range = %s..%s", s.Monthly[0].Month, s.Monthly[5].Month)
	}
	if s.Monthly[5].Customers != 1 || s.Monthly[4].Customers != 1 || s.Monthly[4].Interested != 0 {
		t.Errorf("monthly = %+v", s.Monthly)
	}

	if len(s.Recent) != 4 || s.Recent[0].ID != "1" || s.Recent[3].ID != "4" {
		t.Errorf("recent order = %v", s.Recent)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, testTime)
	if s.Total != 0 || len(s.Countries) != 0 || len(s.Recent) != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
	if len(s.Monthly) != 6 {
		t.Errorf("monthly buckets = %d, want 6", len(s.Monthly))
	}
}

func TestTop_LimitsAndBreaksTies(t *testing.T) {
	got := Top(map[string]int{"b": 1, "a": 1, "c": 3}, 2)
	if len(got) != 2 || got[0].Name != "c" || got[1].Name != "a" {
		t.Errorf("Top() = %v", got)
	}
	if all := Top(map[string]int{"x": 1, "y": 2}, 0); len(all) != 2 {
		t.Errorf("Top(n=0) = %v", all)
	}
}
