package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/pdfdoc"
)

const listTitle = "TradeScout - Customer List"

var listColumns = []pdfdoc.Column{
	{Title: "Country", Width: 26},
	{Title: "Company", Width: 44},
	{Title: "Sector", Width: 26},
	{Title: "Interest", Width: 16},
	{Title: "Priority", Width: 18},
	{Title: "Follow-up", Width: 30},
	{Title: "Date", Width: 20},
}

// WriteListPDF writes the customer table as a PDF.
func WriteListPDF(w io.Writer, records []core.Record, now time.Time) error {
	doc := pdfdoc.New("TradeScout")
	doc.Title(listTitle)
	doc.Subtitle("Generated: " + now.Format("02.01.2006 15:04"))
	doc.Subtitle(fmt.Sprintf("Total customers: %d", len(records)))
	doc.Gap(4)

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Country,
			r.CompanyName,
			r.Sector,
			core.InterestLabel(r.InterestStatus),
			core.PriorityLabel(r.Priority),
			core.FollowUpLabel(r.FollowUpStatus),
			formatDate(r),
		}
	}
	doc.Table(listColumns, rows)
	return doc.Write(w)
}

// WriteStatsPDF writes the dashboard figures as a PDF.
func WriteStatsPDF(w io.Writer, s core.Summary, now time.Time) error {
	doc := pdfdoc.New("TradeScout")
	doc.Title("TradeScout - Statistics")
	doc.Subtitle("Generated: " + now.Format("02.01.2006 15:04"))

	doc.Section("Totals")
	doc.Field("Total customers", strconv.Itoa(s.Total))
	doc.Field("Interested", fmt.Sprintf("%d (%s)", s.Interested, percent(s.Interested, s.Total)))
	doc.Field("High priority", strconv.Itoa(s.HighPriority))
	doc.Field("In follow-up", strconv.Itoa(s.InFollowUp))
	doc.Field("Countries", strconv.Itoa(s.DistinctCountries))
	doc.Field("Sectors", strconv.Itoa(s.DistinctSectors))

	doc.Section("Countries")
	doc.Table(countColumns("Country"), countRows(s.Countries, s.Total))

	doc.Section("Sectors")
	doc.Table(countColumns("Sector"), countRows(s.Sectors, s.Total))

	doc.Section("Priorities")
	doc.Table(countColumns("Priority"), countRows(s.Priorities, s.Total))

	return doc.Write(w)
}

func countColumns(name string) []pdfdoc.Column {
	return []pdfdoc.Column{{Title: name, Width: 90}, {Title: "Customers", Width: 40}, {Title: "Share", Width: 40}}
}

func countRows(counts []core.Count, total int) [][]string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Name, strconv.Itoa(c.Count), percent(c.Count, total)}
	}
	return rows
}

func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(n)*100/float64(total))
}
