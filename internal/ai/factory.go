package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tradescout/tradescout/internal/core"
)

const unknown = "Unknown"

// FactoryInfo is a company profile extracted from a model answer. Every
// value is an estimate.
type FactoryInfo struct {
	CompanyName string          `json:"companyName"`
	Location    FactoryLocation `json:"location"`
	Contact     FactoryContact  `json:"contact"`
	Financial   FactoryFinance  `json:"financial"`
	Operational FactoryOps      `json:"operational"`
}

type FactoryLocation struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Coordinates string `json:"coordinates"`
	Timezone    string `json:"timezone"`
}

type FactoryContact struct {
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Website     string   `json:"website"`
	SocialMedia []string `json:"socialMedia"`
	Languages   []string `json:"languages"`
}

type FactoryFinance struct {
	EstimatedRevenue string `json:"estimatedRevenue"`
	EmployeeCount    string `json:"employeeCount"`
	FoundingYear     string `json:"foundingYear"`
	MarketCap        string `json:"marketCap"`
	CreditRating     string `json:"creditRating"`
	PaymentTerms     string `json:"paymentTerms"`
}

type FactoryOps struct {
	ProductionCapacity string   `json:"productionCapacity"`
	Certifications     []string `json:"certifications"`
	ExportMarkets      []string `json:"exportMarkets"`
	MainProducts       []string `json:"mainProducts"`
}

// Extractor turns a free-text answer into a FactoryInfo.
type Extractor interface {
	Extract(r core.Record, answer string) FactoryInfo
}

// KeywordExtractor reads "label: value" lines. For each field the first line
// containing one of its keywords wins.
type KeywordExtractor struct{}

// Extract implements Extractor.
func (KeywordExtractor) Extract(r core.Record, answer string) FactoryInfo {
	var lines []string
	for _, l := range strings.Split(answer, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	text := func(def string, keywords ...string) string {
		if v := extractValue(lines, keywords); v != "" {
			return v
		}
		return def
	}
	list := func(keywords ...string) []string { return extractList(lines, keywords) }

	website := r.Website
	if website == "" {
		website = unknown
	}

	return FactoryInfo{
		CompanyName: r.CompanyName,
		Location: FactoryLocation{
			Address:     text("Based in "+r.Country, "adres", "address"),
			City:        text(unknown, "şehir", "city"),
			Country:     r.Country,
			Coordinates: text(unknown, "koordinat", "coordinates"),
			Timezone:    text(unknown, "saat", "timezone"),
		},
		Contact: FactoryContact{
			Phone:       text(unknown, "telefon", "phone"),
			Email:       text(unknown, "email", "e-posta"),
			Website:     website,
			SocialMedia: list("sosyal", "social"),
			Languages:   list("dil", "language"),
		},
		Financial: FactoryFinance{
			EstimatedRevenue: text(unknown, "ciro", "revenue"),
			EmployeeCount:    text(unknown, "çalışan", "employee"),
			FoundingYear:     text(unknown, "kuruluş", "founding"),
			MarketCap:        text(unknown, "pazar değeri", "market cap"),
			CreditRating:     text(unknown, "kredi", "credit"),
			PaymentTerms:     text(unknown, "ödeme", "payment"),
		},
		Operational: FactoryOps{
			ProductionCapacity: text(unknown, "kapasite", "capacity"),
			Certifications:     list("sertifika", "certification"),
			ExportMarkets:      list("ihracat", "export"),
			MainProducts:       list("ürün", "main product", "products"),
		},
	}
}

// extractValue returns the text after the first ':' (else the first '-') of
// the first line that mentions a keyword and has such a separator. Keywords
// match at the start of a word, so "city" does not match "capacity".
func extractValue(lines, keywords []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if !hasWordPrefix(lower, kw) {
				continue
			}
			if i := strings.Index(line, ":"); i >= 0 {
				return strings.TrimSpace(line[i+1:])
			}
			if i := strings.Index(line, "-"); i >= 0 {
				return strings.TrimSpace(line[i+1:])
			}
		}
	}
	return ""
}

func hasWordPrefix(s, kw string) bool {
	for offset := 0; ; {
		i := strings.Index(s[offset:], kw)
		if i < 0 {
			return false
		}
		i += offset
		prev, _ := utf8.DecodeLastRuneInString(s[:i])
		if i == 0 || !unicode.IsLetter(prev) {
			return true
		}
		offset = i + len(kw)
	}
}

func extractList(lines, keywords []string) []string {
	out := []string{}
	for _, item := range strings.Split(extractValue(lines, keywords), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// FactoryService looks up company profiles.
type FactoryService struct {
	asker     Asker
	extractor Extractor
	language  string
}

// NewFactoryService returns a FactoryService. A nil extractor means
// KeywordExtractor.
func NewFactoryService(asker Asker, extractor Extractor, language string) *FactoryService {
	if extractor == nil {
		extractor = KeywordExtractor{}
	}
	if language == "" {
		language = "Turkish"
	}
	return &FactoryService{asker: asker, extractor: extractor, language: language}
}

// Info asks for a profile of r and extracts it. Unlike the analyses, a
// provider failure is returned.
func (s *FactoryService) Info(ctx context.Context, r core.Record) (FactoryInfo, error) {
	if !s.asker.Configured() {
		return FactoryInfo{}, ErrNotConfigured
	}
	answer, err := s.asker.Generate(ctx, factoryPrompt(r, s.language), Options{Temperature: 0.3, MaxTokens: 800})
	if err != nil {
		return FactoryInfo{}, fmt.Errorf("factory info for %s: %w", r.CompanyName, err)
	}
	return s.extractor.Extract(r, answer), nil
}

// Summary returns a short prose profile of r.
func (s *FactoryService) Summary(ctx context.Context, r core.Record) string {
	if !s.asker.Configured() {
		return fmt.Sprintf("Detailed information about %s requires a configured AI provider.", r.CompanyName)
	}
	return s.asker.Ask(ctx, factorySummaryPrompt(r, s.language), Options{Temperature: 0.3, MaxTokens: 200})
}
