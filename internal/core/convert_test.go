package core

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	originalPivot := TwoDigitYearPivot
	defer func() { TwoDigitYearPivot = originalPivot }()

	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{
			name:      "ISO format",
			input:     "2024-01-15",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.January,
			wantDay:   15,
		},
		{
			name:      "ISO leap day",
			input:     "2024-02-29",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.February,
			wantDay:   29,
		},
		{
			name:      "day first with dots",
			input:     "15.01.2024",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.January,
			wantDay:   15,
		},
		{
			name:      "day first with slashes",
			input:     "05/03/2024",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.March,
			wantDay:   5,
		},
		{
			name:      "text month",
			input:     "Jan 15, 2024",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.January,
			wantDay:   15,
		},
		{
			name:      "compact format",
			input:     "20240115",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.January,
			wantDay:   15,
		},
		{
			name:      "RFC3339 timestamp",
			input:     "2024-06-01T10:30:00Z",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.June,
			wantDay:   1,
		},
		{
			name:      "two digit year",
			input:     "15.01.24",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.January,
			wantDay:   15,
		},
		{
			name:      "whitespace is trimmed",
			input:     "  2024-01-15  ",
			wantValid: true,
			wantYear:  2024,
			wantMonth: time.January,
			wantDay:   15,
		},
		{name: "empty", input: "", wantValid: false},
		{name: "garbage", input: "not a date", wantValid: false},
		{name: "invalid month", input: "2024-13-01", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDay(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseDay(%q) ok = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if !ok {
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseDay(%q) = %v, want %d-%02d-%02d", tt.input, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestParseDay_TwoDigitPivot(t *testing.T) {
	originalPivot := TwoDigitYearPivot
	defer func() { TwoDigitYearPivot = originalPivot }()

	TwoDigitYearPivot = 0
	next := (time.Now().Year() + 1) % 100

	got, ok := ParseDay(time.Date(2000+next, 1, 2, 0, 0, 0, 0, time.UTC).Format("02.01.06"))
	if !ok {
		t.Fatal("expected two digit year to parse")
	}
	if got.Year() > time.Now().Year() {
		t.Errorf("year %d should have moved back a century", got.Year())
	}
}

func TestToPgText(t *testing.T) {
	if v := ToPgText("   "); v.Valid {
		t.Error("blank text should be NULL")
	}
	v := ToPgText("  https://example.com ")
	if !v.Valid || v.String != "https://example.com" {
		t.Errorf("ToPgText() = %+v", v)
	}
	if FromPgText(v) != "https://example.com" {
		t.Errorf("FromPgText() = %q", FromPgText(v))
	}
	if FromPgText(ToPgText("")) != "" {
		t.Error("FromPgText(NULL) should be empty")
	}
}

func TestToPgUUID(t *testing.T) {
	const id = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	u := ToPgUUID(id)
	if !u.Valid {
		t.Fatal("valid uuid should be valid")
	}
	if got := PgUUIDToString(u); got != id {
		t.Errorf("PgUUIDToString() = %q, want %q", got, id)
	}

	for _, bad := range []string{"", "123", "not-a-uuid"} {
		if ToPgUUID(bad).Valid {
			t.Errorf("ToPgUUID(%q) should be invalid", bad)
		}
	}
	if PgUUIDToString(ToPgUUID("")) != "" {
		t.Error("invalid uuid should render empty")
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`  Acme  `, "Acme"},
		{`="00123"`, "00123"},
		{`=SUM`, "SUM"},
		{`"quoted"`, "quoted"},
		{"\ufeffÜlke", "Ülke"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"\ufeffÜlke", " Firma Adı ", "Sektör", "ülke"})

	if idx["ülke"] != 0 {
		t.Errorf("ülke index = %d, want 0 (first occurrence wins)", idx["ülke"])
	}
	if idx["firma adı"] != 1 {
		t.Errorf("firma adı index = %d, want 1", idx["firma adı"])
	}
	if _, ok := idx["missing"]; ok {
		t.Error("unexpected key")
	}
}
