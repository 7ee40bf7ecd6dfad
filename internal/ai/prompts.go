package ai

import (
	"fmt"

	"github.com/tradescout/tradescout/internal/core"
)

func systemPrompt(language string) string {
	return fmt.Sprintf("You are an international trade and investment expert. Answer in %s. "+
		"Keep the analysis short, in bullet points and focused on concrete actions. At most 4-5 bullets.", language)
}

// analysisPrompts returns the six company prompts in Analysis field order.
func analysisPrompts(r core.Record) [6]string {
	return [6]string{
		fmt.Sprintf("Short analysis of the %s sector in %s, 3-4 bullets:\n"+
			"- Economic situation\n- Investment climate\n- Risks", r.Sector, r.Country),
		fmt.Sprintf("%s sector in %s, in bullets:\n"+
			"- Growth trend\n- Opportunities\n- State of technology", r.Sector, r.Country),
		fmt.Sprintf("Short assessment of how well %s fits the Turkish market:\n"+
			"- Market demand\n- Customs situation\n- Fit score (1-10)", r.CompanyName),
		fmt.Sprintf("Certificates required in the %s sector, in bullets:\n"+
			"- Required for the EU\n- Required for Turkey\n- Commonly missing", r.Sector),
		fmt.Sprintf("Short SWOT for %s (%s, %s):\n"+
			"- Strengths (2 bullets)\n- Weaknesses (2 bullets)\n- Opportunities (2 bullets)\n- Threats (2 bullets)",
			r.CompanyName, r.Country, r.Sector),
		fmt.Sprintf("3-4 concrete recommendations for working with %s:\n"+
			"- Immediate steps\n- Medium-term plans\n- Points of attention\nLatest note: %s", r.CompanyName, r.ActionNote),
	}
}

func quickPrompt(r core.Record, question string) string {
	return fmt.Sprintf("Company: %s\nCountry: %s\nSector: %s\n\nQuestion: %s\n\nGive a short, clear answer.",
		r.CompanyName, r.Country, r.Sector, question)
}

func marketPrompt(country, sector string) string {
	return fmt.Sprintf("What is the current market situation of the %s sector in %s? "+
		"Cover growth rates, opportunities, threats and the potential for Turkish companies.", sector, country)
}

func competitorPrompt(sector, country string) string {
	return fmt.Sprintf("Who are the main players in the %s sector in %s? "+
		"Name the market leaders and new entrants, and the competitive advantages Turkish companies could have.", sector, country)
}

func factoryPrompt(r core.Record, language string) string {
	website := r.Website
	if website == "" {
		website = "unknown"
	}
	return fmt.Sprintf(`You are a business intelligence expert. Describe the company %s in the categories below. Answer in %s.

LOCATION:
- Address: full address (estimate)
- City: city, country %s
- Coordinates: latitude/longitude
- Timezone

CONTACT:
- Phone: with country code
- Email: (estimate)
- Website: %s
- Social media accounts
- Languages spoken

FINANCIAL:
- Revenue: estimated yearly revenue (USD)
- Employee count
- Founding year (estimate)
- Market cap
- Credit rating (estimate)
- Payment terms

OPERATIONS:
- Production capacity
- Certifications held
- Export markets
- Main products (%s sector)

One item per line as "label: value", comma-separated lists. Plain text, not JSON.`,
		r.CompanyName, language, r.Country, website, r.Sector)
}

func factorySummaryPrompt(r core.Record, language string) string {
	return fmt.Sprintf("Summarize the company %s (%s - %s) in 3-4 sentences. Answer in %s.\n"+
		"- Location and size\n- Estimated financial situation\n- Reachability\n- Investment potential\n\nBe short and clear.",
		r.CompanyName, r.Country, r.Sector, language)
}
