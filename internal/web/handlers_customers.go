package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
)

const maxJSONBody = 1 << 20

// SearchResponse is the result of a customer search. Offline is set when the
// store could not be reached and the cached list was filtered instead.
type SearchResponse struct {
	Records []core.Record `json:"records"`
	Offline bool          `json:"offline"`
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Cache.Snapshot())
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeEntry(w, r)
	if !ok {
		return
	}

	out, err := s.Cache.AddRecord(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeEntry(w, r)
	if !ok {
		return
	}

	out, err := s.Cache.UpdateRecord(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, core.ErrNotFound) {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	out, err := s.Cache.DeleteRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.customer(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

// handleReload refreshes the list. A gateway failure is not an HTTP error:
// the cache falls back to the mirror and reports it in lastError.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Cache.Reload(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn("reload fell back to mirror", "error", err)
	}
	writeJSON(w, r, http.StatusOK, s.Cache.Snapshot())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	f, err := parseSearchFilters(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if s.Gateway != nil {
		records, err := s.Gateway.Search(r.Context(), f)
		if err == nil {
			writeJSON(w, r, http.StatusOK, SearchResponse{Records: records})
			return
		}
		if !core.IsTransport(err) {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		logging.FromContext(r.Context()).Warn("search offline; filtering cached customers", "error", err)
	}

	writeJSON(w, r, http.StatusOK, SearchResponse{
		Records: core.Filter(s.Cache.Records(), f),
		Offline: true,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Catalog)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, core.Summarize(s.Cache.Records(), s.now()))
}

// customer looks up the {id} path parameter in the cache and writes a 404
// when it is absent.
func (s *Server) customer(w http.ResponseWriter, r *http.Request) (core.Record, bool) {
	rec, ok := s.Cache.FindByID(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, r, core.ErrNotFound, http.StatusNotFound)
	}
	return rec, ok
}

// decodeEntry reads an Input from the body and runs the entry form checks,
// including the catalog lookup.
func (s *Server) decodeEntry(w http.ResponseWriter, r *http.Request) (core.Input, bool) {
	var in core.Input
	if !s.decodeJSON(w, r, &in) {
		return in, false
	}

	in = in.Normalize().WithDefaults()
	if err := core.ValidateEntry(in, s.Catalog); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return in, false
	}
	return in, true
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return false
	}
	return true
}

// parseSearchFilters reads the search query parameters. Priority accepts the
// display labels as well as the canonical values.
func parseSearchFilters(r *http.Request) (core.SearchFilters, error) {
	q := r.URL.Query()
	f := core.SearchFilters{
		Term:    q.Get("searchTerm"),
		Country: q.Get("country"),
		Sector:  q.Get("sector"),
	}
	if f.Term == "" {
		f.Term = q.Get("q")
	}

	var errs core.ValidationErrors
	if v := q.Get("priority"); v != "" {
		p, ok := core.ParsePriority(v)
		if !ok {
			errs = append(errs, core.ValidationError{Field: "priority", Value: v, Message: "invalid enum value"})
		}
		f.Priority = p
	}
	for _, d := range []struct {
		name string
		dst  *time.Time
	}{{"dateFrom", &f.DateFrom}, {"dateTo", &f.DateTo}} {
		v := q.Get(d.name)
		if v == "" {
			continue
		}
		t, ok := core.ParseDay(v)
		if !ok {
			errs = append(errs, core.ValidationError{Field: d.name, Value: v, Message: "invalid date (expected YYYY-MM-DD)"})
			continue
		}
		*d.dst = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	}

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}
