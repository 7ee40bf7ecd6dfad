package core

// normalize.go maps free-text enum values (spreadsheet cells, backup files)
// onto the canonical enums, and back to the display labels used in exports.
// The labels are accepted by the normalizers so an export can be re-imported.

import "strings"

var interestAliases = map[string]InterestStatus{
	"evet": InterestYes, "yes": InterestYes, "1": InterestYes, "true": InterestYes,
	"hayır": InterestNo, "hayir": InterestNo, "no": InterestNo, "0": InterestNo, "false": InterestNo,
}

var priorityAliases = map[string]Priority{
	"yüksek": PriorityHigh, "yuksek": PriorityHigh, "high": PriorityHigh,
	"orta": PriorityMedium, "medium": PriorityMedium,
	"düşük": PriorityLow, "dusuk": PriorityLow, "low": PriorityLow,
}

var followUpAliases = map[string]FollowUpStatus{
	"1. takip": FollowUpFirst, "1 takip": FollowUpFirst, "first-follow": FollowUpFirst, "first follow": FollowUpFirst,
	"2. takip": FollowUpSecond, "2 takip": FollowUpSecond, "second-follow": FollowUpSecond, "second follow": FollowUpSecond,
	"yok": FollowUpNone, "none": FollowUpNone, "no follow": FollowUpNone, "takip yok": FollowUpNone,
}

// foldKey lowercases s with Turkish-aware handling of dotted and dotless I.
func foldKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("İ", "i", "I", "ı").Replace(s)
	return strings.ToLower(s)
}

// asciiFold additionally maps dotless ı to i so "HAYIR" and "hayir" both match.
func asciiFold(s string) string {
	return strings.ReplaceAll(s, "ı", "i")
}

// ParseInterest maps a free-text value to an InterestStatus.
func ParseInterest(s string) (InterestStatus, bool) {
	return lookupFold(interestAliases, s)
}

// ParsePriority maps a free-text value to a Priority.
func ParsePriority(s string) (Priority, bool) {
	return lookupFold(priorityAliases, s)
}

// ParseFollowUp maps a free-text value to a FollowUpStatus.
func ParseFollowUp(s string) (FollowUpStatus, bool) {
	return lookupFold(followUpAliases, s)
}

func lookupFold[T any](aliases map[string]T, s string) (T, bool) {
	key := foldKey(s)
	if v, ok := aliases[key]; ok {
		return v, true
	}
	key = asciiFold(key)
	for alias, v := range aliases {
		if asciiFold(alias) == key {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// InterestLabel returns the display label for s.
func InterestLabel(s InterestStatus) string {
	if s == InterestYes {
		return "Evet"
	}
	return "Hayır"
}

// PriorityLabel returns the display label for p.
func PriorityLabel(p Priority) string {
	switch p {
	case PriorityHigh:
		return "Yüksek"
	case PriorityMedium:
		return "Orta"
	case PriorityLow:
		return "Düşük"
	}
	return string(p)
}

// FollowUpLabel returns the display label for f.
func FollowUpLabel(f FollowUpStatus) string {
	switch f {
	case FollowUpFirst:
		return "1. Takip"
	case FollowUpSecond:
		return "2. Takip"
	case FollowUpNone:
		return "Yok"
	}
	return string(f)
}
