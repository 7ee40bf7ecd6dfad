package web

// errors.go provides unified error response handling for the web layer.
//
// Every handler failure goes through respondError: the technical error is
// logged with the request ID, the client gets the mapped user message. The
// response format follows the request: an HTML fragment for HTMX, JSON for
// API calls, plain text otherwise.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tradescout/tradescout/internal/ai"
	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
	"github.com/tradescout/tradescout/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Action  string                 `json:"action,omitempty"`
	Code    string                 `json:"code"`
	Fields  []core.ValidationError `json:"fields,omitempty"`
}

// respondError maps err with core.MapError and writes it in the format the
// client expects. Validation failures always answer 422 with the field list.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	s.respondMessage(w, r, err, core.MapError(err), statusCode)
}

// respondAIError reports a provider failure. Provider errors often wrap
// network errors whose text would otherwise map to a database code.
func (s *Server) respondAIError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		s.respondMessage(w, r, err, core.MapError(ai.ErrNotConfigured), http.StatusServiceUnavailable)
	case r.Context().Err() != nil:
		s.respondError(w, r, r.Context().Err(), http.StatusGatewayTimeout)
	default:
		s.respondMessage(w, r, err, core.MapError(errAIUnavailable), http.StatusBadGateway)
	}
}

var errAIUnavailable = errors.New("ai unavailable")

func (s *Server) respondMessage(w http.ResponseWriter, r *http.Request, err error, msg core.UserMessage, statusCode int) {
	var fields core.ValidationErrors
	if errors.As(err, &fields) {
		statusCode = http.StatusUnprocessableEntity
	}

	logger := logging.FromContext(r.Context())
	level := logger.Warn
	if statusCode >= http.StatusInternalServerError {
		level = logger.Error
	}
	level("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", msg.Code,
	)

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, msg, statusCode)
	case wantsJSON(r):
		respondErrorJSON(w, msg, fields, statusCode)
	default:
		http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
	}
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, fields core.ValidationErrors, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
		Fields:  fields,
	})
}

func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response. API routes
// always do.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
