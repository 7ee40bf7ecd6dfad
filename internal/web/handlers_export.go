package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/export"
)

// handleExport downloads the customer list. Search parameters, when given,
// narrow the export to the matching customers.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	f, err := parseSearchFilters(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	now := s.now()
	records := core.Filter(s.Cache.Records(), f)
	s.sendFile(w, r, format.ContentType(), export.Filename(format, now), func(w io.Writer) error {
		return export.Write(w, format, records, now)
	})
}

func (s *Server) handleExportStats(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	summary := core.Summarize(s.Cache.Records(), now)
	name := fmt.Sprintf("customer_statistics_%s.pdf", now.Format("2006-01-02"))
	s.sendFile(w, r, export.FormatPDF.ContentType(), name, func(w io.Writer) error {
		return export.WriteStatsPDF(w, summary, now)
	})
}

// sendFile renders into memory first so a render failure can still be
// reported as an error response.
func (s *Server) sendFile(w http.ResponseWriter, r *http.Request, contentType, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	sendBuffer(w, contentType, filename, &buf)
}

func sendBuffer(w http.ResponseWriter, contentType, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
