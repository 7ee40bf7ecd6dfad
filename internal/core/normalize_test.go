package core

import "testing"

func TestParseInterest(t *testing.T) {
	tests := []struct {
		in   string
		want InterestStatus
		ok   bool
	}{
		{"Evet", InterestYes, true},
		{"YES", InterestYes, true},
		{"1", InterestYes, true},
		{"Hayır", InterestNo, true},
		{"HAYIR", InterestNo, true},
		{"hayir", InterestNo, true},
		{" no ", InterestNo, true},
		{"maybe", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseInterest(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseInterest(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"Yüksek", PriorityHigh, true},
		{"YUKSEK", PriorityHigh, true},
		{"high", PriorityHigh, true},
		{"Orta", PriorityMedium, true},
		{"Düşük", PriorityLow, true},
		{"dusuk", PriorityLow, true},
		{"urgent", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePriority(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePriority(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseFollowUp(t *testing.T) {
	tests := []struct {
		in   string
		want FollowUpStatus
		ok   bool
	}{
		{"1. Takip", FollowUpFirst, true},
		{"first-follow", FollowUpFirst, true},
		{"2 takip", FollowUpSecond, true},
		{"Second Follow", FollowUpSecond, true},
		{"Yok", FollowUpNone, true},
		{"TAKİP YOK", FollowUpNone, true},
		{"none", FollowUpNone, true},
		{"3. takip", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFollowUp(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFollowUp(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	for _, s := range []InterestStatus{InterestYes, InterestNo} {
		if got, ok := ParseInterest(InterestLabel(s)); !ok || got != s {
			t.Errorf("interest %q does not round trip via %q", s, InterestLabel(s))
		}
	}
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if got, ok := ParsePriority(PriorityLabel(p)); !ok || got != p {
			t.Errorf("priority %q does not round trip via %q", p, PriorityLabel(p))
		}
	}
	for _, f := range []FollowUpStatus{FollowUpNone, FollowUpFirst, FollowUpSecond} {
		if got, ok := ParseFollowUp(FollowUpLabel(f)); !ok || got != f {
			t.Errorf("follow-up %q does not round trip via %q", f, FollowUpLabel(f))
		}
	}
}
