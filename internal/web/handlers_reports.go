package web

import (
	"io"
	"net/http"

	"github.com/tradescout/tradescout/internal/report"
)

// handleInvestorReport renders one customer's investor PDF. A POST body may
// carry the report details the CRM does not store.
func (s *Server) handleInvestorReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.customer(w, r)
	if !ok {
		return
	}

	var extra report.Extra
	if r.Method == http.MethodPost && r.ContentLength != 0 {
		if !s.decodeJSON(w, r, &extra) {
			return
		}
	}

	now := s.now()
	if extra.ReportDate.IsZero() {
		extra.ReportDate = now
	}
	data := report.FromRecord(rec, extra)
	s.sendFile(w, r, "application/pdf", report.InvestorFilename(rec.CompanyName, now), func(w io.Writer) error {
		return report.Investor(w, data)
	})
}

func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	records := s.Cache.Records()
	s.sendFile(w, r, "application/pdf", report.SummaryFilename(s.now()), func(w io.Writer) error {
		return report.SummaryReport(w, records)
	})
}

// handleBulkReports zips an investor report for every customer.
func (s *Server) handleBulkReports(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	records := s.Cache.Records()
	s.sendFile(w, r, "application/zip", report.BulkFilename(now), func(w io.Writer) error {
		return report.Bulk(w, records, now)
	})
}
