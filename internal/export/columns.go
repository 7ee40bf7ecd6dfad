package export

import (
	"github.com/tradescout/tradescout/internal/core"
)

const dateLayout = "02.01.2006"

// Header is the spreadsheet header row. The first eight names are the import
// aliases, so an export can be imported again.
var Header = []string{
	"Ülke",
	"Firma Adı",
	"Web Sitesi",
	"Sektör",
	"İlgi Durumu",
	"Öncelik",
	"Aksiyon Notu",
	"Takip Durumu",
	"Kayıt Tarihi",
}

var columnWidths = []float64{15, 25, 30, 15, 12, 10, 40, 12, 12}

// cells returns the spreadsheet row for r, in Header order.
func cells(r core.Record) []string {
	return []string{
		r.Country,
		r.CompanyName,
		r.Website,
		r.Sector,
		core.InterestLabel(r.InterestStatus),
		core.PriorityLabel(r.Priority),
		r.ActionNote,
		core.FollowUpLabel(r.FollowUpStatus),
		formatDate(r),
	}
}

func formatDate(r core.Record) string {
	if r.CreatedAt.IsZero() {
		return ""
	}
	return r.CreatedAt.Format(dateLayout)
}
