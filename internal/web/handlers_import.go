package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/importer"
	"github.com/tradescout/tradescout/internal/logging"
)

// multipartOverhead is the body allowance above the file size for the
// multipart envelope.
const multipartOverhead = 64 << 10

var errNoFile = errors.New("no file provided")

// ImportResponse summarises one import. Rows that failed to parse or
// validate are listed in Errors and were not added.
type ImportResponse struct {
	TotalRows int      `json:"totalRows"`
	ValidRows int      `json:"validRows"`
	Imported  int      `json:"imported"`
	Offline   int      `json:"offline"` // stored locally because the store failed
	Errors    []string `json:"errors"`
}

// handleImport parses an uploaded file and adds every valid row.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	format, err := importer.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.Limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.Limiter.Release()

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("%w or invalid form: %v", importer.ErrFileTooLarge, err), http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	logger := logging.WithFields(r.Context(), "format", format, "file", header.Filename)
	logger.Info("import started", "size", header.Size)

	res, err := importer.Parse(format, importer.LimitSize(file, maxSize))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	out := ImportResponse{
		TotalRows: res.TotalRows,
		ValidRows: res.ValidRows,
		Errors:    append([]string{}, res.Errors...),
	}
	for i, in := range res.Valid {
		if err := r.Context().Err(); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("import stopped after %d of %d rows: %v", i, len(res.Valid), err))
			break
		}
		added, err := s.Cache.AddRecord(r.Context(), in)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", in.CompanyName, core.FormatUserError(err)))
			continue
		}
		out.Imported++
		if added.Offline {
			out.Offline++
		}
	}

	logger.Info("import finished",
		"total_rows", out.TotalRows,
		"imported", out.Imported,
		"offline", out.Offline,
		"errors", len(out.Errors),
	)
	writeJSON(w, r, http.StatusOK, out)
}

// handleImportTemplate serves the blank import workbook or text file.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	format, err := importer.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := importer.WriteTemplate(&buf, format); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	sendBuffer(w, templateContentType(format), importer.TemplateFilename(format), &buf)
}

func templateContentType(f importer.Format) string {
	if f == importer.FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
