package web

import (
	"net/http"
	"strings"

	"github.com/tradescout/tradescout/internal/core"
)

// AnswerResponse carries a free-text answer. When no provider is configured
// the answer is the fallback text and Configured is false.
type AnswerResponse struct {
	Answer     string `json:"answer"`
	Configured bool   `json:"configured"`
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.customer(w, r)
	if !ok {
		return
	}

	res, err := s.Analyzer.AnalyzeCompany(r.Context(), rec)
	if err != nil {
		s.respondAIError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.customer(w, r)
	if !ok {
		return
	}

	var req askRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := requireParams("question", req.Question); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	s.answer(w, r, s.Analyzer.QuickAnalysis(r.Context(), rec, strings.TrimSpace(req.Question)))
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	country, sector := r.URL.Query().Get("country"), r.URL.Query().Get("sector")
	if err := requireParams("country", country, "sector", sector); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	s.answer(w, r, s.Analyzer.MarketAnalysis(r.Context(), country, sector))
}

func (s *Server) handleCompetitors(w http.ResponseWriter, r *http.Request) {
	country, sector := r.URL.Query().Get("country"), r.URL.Query().Get("sector")
	if err := requireParams("country", country, "sector", sector); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	s.answer(w, r, s.Analyzer.CompetitorAnalysis(r.Context(), sector, country))
}

func (s *Server) handleFactoryInfo(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.customer(w, r)
	if !ok {
		return
	}

	info, err := s.Factory.Info(r.Context(), rec)
	if err != nil {
		s.respondAIError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, info)
}

func (s *Server) handleFactorySummary(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.customer(w, r)
	if !ok {
		return
	}
	s.answer(w, r, s.Factory.Summary(r.Context(), rec))
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request, text string) {
	writeJSON(w, r, http.StatusOK, AnswerResponse{Answer: text, Configured: s.Analyzer.Configured()})
}

// requireParams takes name, value pairs and reports every blank value as a
// required-field error.
func requireParams(pairs ...string) error {
	var errs core.ValidationErrors
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			errs = append(errs, core.ValidationError{Field: pairs[i], Message: "required field is empty"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
