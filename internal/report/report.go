// Package report builds investor-facing PDF reports from customer records.
//
// A report starts from a [core.Record]; details the CRM does not track
// (founding year, products, certificates and so on) come from an [Extra]
// supplied by the person requesting the report.
package report

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tradescout/tradescout/internal/core"
)

const notSpecified = "Belirtilmemiş"

// Data is everything printed on one investor report.
type Data struct {
	CompanyName   string `json:"companyName"`
	Country       string `json:"country"`
	Website       string `json:"website,omitempty"`
	FoundingYear  string `json:"foundingYear,omitempty"`
	EmployeeCount string `json:"employeeCount,omitempty"`

	Sector             string `json:"sector"`
	MainProducts       string `json:"mainProducts,omitempty"`
	ProductionCapacity string `json:"productionCapacity,omitempty"`
	Certificates       string `json:"certificates,omitempty"`
	TechnologyLevel    string `json:"technologyLevel,omitempty"`

	ExportStatus       bool   `json:"exportStatus"`
	ExportCountries    string `json:"exportCountries,omitempty"`
	ExportRatio        string `json:"exportRatio,omitempty"`
	SeekingDistributor bool   `json:"seekingDistributor"`

	OpenToPartnership bool   `json:"openToPartnership"`
	PartnershipType   string `json:"partnershipType,omitempty"`
	ExistingPartners  string `json:"existingPartners,omitempty"`
	ResponseReceived  bool   `json:"responseReceived"`

	LastAction         string `json:"lastAction"`
	FollowUpStatus     string `json:"followUpStatus"`
	ContactEstablished bool   `json:"contactEstablished"`

	ReporterName string    `json:"reporterName,omitempty"`
	ReportDate   time.Time `json:"reportDate"`
}

// Extra holds the optional report details entered by hand. Non-empty
// fields override the defaults.
type Extra struct {
	FoundingYear       string    `json:"foundingYear,omitempty"`
	EmployeeCount      string    `json:"employeeCount,omitempty"`
	MainProducts       string    `json:"mainProducts,omitempty"`
	ProductionCapacity string    `json:"productionCapacity,omitempty"`
	Certificates       string    `json:"certificates,omitempty"`
	TechnologyLevel    string    `json:"technologyLevel,omitempty"`
	ExportCountries    string    `json:"exportCountries,omitempty"`
	ExportRatio        string    `json:"exportRatio,omitempty"`
	PartnershipType    string    `json:"partnershipType,omitempty"`
	ExistingPartners   string    `json:"existingPartners,omitempty"`
	ReporterName       string    `json:"reporterName,omitempty"`
	ReportDate         time.Time `json:"reportDate,omitzero"`
}

// FromRecord derives report data from r. Interest stands in for both export
// activity and openness to partnership; any follow-up counts as a response.
func FromRecord(r core.Record, extra Extra) Data {
	d := Data{
		CompanyName:        r.CompanyName,
		Country:            r.Country,
		Website:            r.Website,
		Sector:             r.Sector,
		ExportStatus:       r.InterestStatus == core.InterestYes,
		OpenToPartnership:  r.InterestStatus == core.InterestYes,
		ResponseReceived:   r.FollowUpStatus != core.FollowUpNone,
		SeekingDistributor: r.Priority == core.PriorityHigh,
		ContactEstablished: true,
		LastAction:         r.ActionNote,
		FollowUpStatus:     followUpText(r.FollowUpStatus),
		ReportDate:         extra.ReportDate,

		FoundingYear:       extra.FoundingYear,
		EmployeeCount:      extra.EmployeeCount,
		MainProducts:       extra.MainProducts,
		ProductionCapacity: extra.ProductionCapacity,
		Certificates:       extra.Certificates,
		TechnologyLevel:    extra.TechnologyLevel,
		ExportCountries:    extra.ExportCountries,
		ExportRatio:        extra.ExportRatio,
		PartnershipType:    extra.PartnershipType,
		ExistingPartners:   extra.ExistingPartners,
		ReporterName:       extra.ReporterName,
	}
	if d.ReportDate.IsZero() {
		d.ReportDate = time.Now()
	}
	return d
}

func followUpText(f core.FollowUpStatus) string {
	if f == core.FollowUpNone {
		return "Takip Yok"
	}
	return core.FollowUpLabel(f)
}

// Recommendation tiers, strongest first.
const (
	RecommendPriority = "Yüksek potansiyelli, öncelikli takip edilmesi önerilen firma."
	RecommendMeeting  = "Potansiyeli yüksek, detaylı görüşme yapılması önerilen firma."
	RecommendFollow   = "Orta seviye potansiyel, takip edilebilir."
	RecommendLongTerm = "Düşük potansiyel, uzun vadeli takip önerilir."
)

// Recommendation picks the tier for d.
func Recommendation(d Data) string {
	switch {
	case d.ExportStatus && d.OpenToPartnership && d.ResponseReceived:
		return RecommendPriority
	case d.ExportStatus && d.OpenToPartnership:
		return RecommendMeeting
	case d.OpenToPartnership:
		return RecommendFollow
	}
	return RecommendLongTerm
}

// Summary is the prose summary printed in the report.
func Summary(d Data) string {
	market := "yerel pazar odaklı"
	if d.ExportStatus {
		market = "ihracat yapan"
	}
	partnership := "iş birliği konusunda temkinli"
	if d.OpenToPartnership {
		partnership = "Türk firmalarla iş birliğine açık"
	}
	response := "henüz net geri dönüş alınmamış"
	if d.ResponseReceived {
		response = "olumlu geri dönüş alınmış"
	}
	return fmt.Sprintf("%s, %s merkezli %s bir %s firmasıdır. %s ve %s. %s",
		d.CompanyName, d.Country, market, d.Sector, partnership, response, Recommendation(d))
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]`)

// InvestorFilename returns the download name of an investor report.
func InvestorFilename(company string, day time.Time) string {
	return fmt.Sprintf("Yatirimci_Raporu_%s_%s.pdf", unsafeName.ReplaceAllString(company, "_"), day.Format("2006-01-02"))
}

// SummaryFilename returns the download name of the summary report.
func SummaryFilename(day time.Time) string {
	return fmt.Sprintf("TradeScout_Ozet_Raporu_%s.pdf", day.Format("2006-01-02"))
}

// BulkFilename returns the download name of the bulk archive.
func BulkFilename(day time.Time) string {
	return fmt.Sprintf("TradeScout_Yatirimci_Raporlari_%s.zip", day.Format("2006-01-02"))
}

func yesNo(b bool) string {
	if b {
		return "Evet"
	}
	return "Hayır"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
