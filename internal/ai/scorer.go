package ai

import (
	"strings"

	"github.com/tradescout/tradescout/internal/core"
)

// Scorer rates a company from its record and the generated analyses.
type Scorer interface {
	Score(r core.Record, analyses []string) int
	NextActions(r core.Record, analyses []string) []string
}

const maxNextActions = 5

// KeywordScorer scores with fixed weights and a keyword scan of the
// analyses. Country and sector names match case-insensitively in English or
// Turkish.
type KeywordScorer struct{}

var (
	stableCountries = []string{
		"Saudi Arabia", "United Arab Emirates", "UAE", "Qatar", "Kuwait", "Malaysia",
		"Suudi Arabistan", "BAE", "Katar", "Kuveyt", "Malezya",
	}
	growingSectors = []string{
		"Technology", "Healthcare", "Food", "Energy",
		"Teknoloji", "Sağlık", "Gıda", "Enerji",
	}
	positiveKeywords = []string{
		"fırsat", "büyüme", "potansiyel", "uygun", "olumlu", "avantaj",
		"opportunit", "growth", "potential", "suitable", "positive", "advantage",
	}
	negativeKeywords = []string{
		"risk", "sorun", "engel", "olumsuz", "dezavantaj", "tehlike",
		"problem", "barrier", "negative", "disadvantage", "threat",
	}
)

// Score starts at 50, adds the record and keyword weights and clamps the
// result to 0..100.
func (KeywordScorer) Score(r core.Record, analyses []string) int {
	score := 50
	if containsFold(stableCountries, r.Country) {
		score += 15
	}
	if containsFold(growingSectors, r.Sector) {
		score += 10
	}
	if r.InterestStatus == core.InterestYes {
		score += 15
	}
	switch r.Priority {
	case core.PriorityHigh:
		score += 10
	case core.PriorityMedium:
		score += 5
	}
	if r.FollowUpStatus != core.FollowUpNone {
		score += 10
	}

	text := joinLower(analyses)
	for _, w := range positiveKeywords {
		if strings.Contains(text, w) {
			score += 2
		}
	}
	for _, w := range negativeKeywords {
		if strings.Contains(text, w) {
			score -= 2
		}
	}
	return min(max(score, 0), 100)
}

// NextActions suggests up to five follow-up steps.
func (KeywordScorer) NextActions(r core.Record, analyses []string) []string {
	var actions []string
	if r.InterestStatus == core.InterestYes && r.Priority == core.PriorityHigh {
		actions = append(actions, "Schedule an urgent meeting", "Share detailed technical information")
	}
	switch r.FollowUpStatus {
	case core.FollowUpNone:
		actions = append(actions, "Send the first follow-up email")
	case core.FollowUpFirst:
		actions = append(actions, "Make the second follow-up call")
	}
	if r.Website != "" {
		actions = append(actions, "Review the company website in detail")
	}

	text := joinLower(analyses)
	if strings.Contains(text, "certif") || strings.Contains(text, "sertifika") {
		actions = append(actions, "Check certification status")
	}
	if strings.Contains(text, "market") || strings.Contains(text, "pazar") {
		actions = append(actions, "Run market research")
	}
	if strings.Contains(text, "risk") {
		actions = append(actions, "Prepare a risk assessment")
	}

	if len(actions) > maxNextActions {
		actions = actions[:maxNextActions]
	}
	return actions
}

func joinLower(texts []string) string {
	return strings.ToLower(strings.Join(texts, " "))
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
