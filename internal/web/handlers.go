package web

import (
	"net/http"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/importer"
	"github.com/tradescout/tradescout/internal/store"
	"github.com/tradescout/tradescout/internal/web/templates"
)

// StatusResponse reports the health of the moving parts.
type StatusResponse struct {
	Store        *store.ConnectionStatus `json:"store,omitempty"` // absent without a monitor
	Imports      importer.LimiterStatus  `json:"imports"`
	AIConfigured bool                    `json:"aiConfigured"`
	LastError    string                  `json:"lastError,omitempty"`
	Customers    int                     `json:"customers"`
}

// handleDashboard renders the overview page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	st := s.status()

	data := templates.DashboardData{
		Summary:      core.Summarize(s.Cache.Records(), s.now()),
		LastError:    st.LastError,
		AIConfigured: st.AIConfigured,
		Connected:    st.Store == nil || st.Store.Connected,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(data).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.status())
}

func (s *Server) status() StatusResponse {
	snap := s.Cache.Snapshot()
	st := StatusResponse{
		Imports:      s.Limiter.Status(),
		AIConfigured: s.Analyzer.Configured(),
		LastError:    snap.LastError,
		Customers:    len(snap.Records),
	}
	if s.Monitor != nil {
		cs := s.Monitor.Status()
		st.Store = &cs
	}
	return st
}
