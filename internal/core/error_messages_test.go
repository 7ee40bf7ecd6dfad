package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode:    "DB001",
			wantMessage: "Unable to reach the customer database",
		},
		{
			name:        "timeout maps correctly",
			err:         errors.New("i/o timeout"),
			wantCode:    "DB003",
			wantMessage: "The customer database did not respond in time",
		},
		{
			name:        "not found sentinel maps correctly",
			err:         fmt.Errorf("get abc: %w", ErrNotFound),
			wantCode:    "DB004",
			wantMessage: "Customer not found",
		},
		{
			name:        "transport error maps correctly",
			err:         &TransportError{Op: "list", Err: errors.New("boom")},
			wantCode:    "DB005",
			wantMessage: "The customer database is unavailable",
		},
		{
			name:        "validation errors map to first matching pattern",
			err:         ValidationErrors{{Field: "sector", Message: msgRequired}},
			wantCode:    "VAL001",
			wantMessage: "Required field is empty",
		},
		{
			name:        "website message maps correctly",
			err:         ValidationErrors{{Field: "website", Message: msgInvalidURL}},
			wantCode:    "VAL002",
			wantMessage: "Website address is not valid",
		},
		{
			name:        "unknown format maps correctly",
			err:         errors.New("unsupported format: pdf"),
			wantCode:    "FILE007",
			wantMessage: "File format is not supported",
		},
		{
			name:        "deadline maps to request timeout",
			err:         errors.New("context deadline exceeded"),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "unreadable body maps correctly",
			err:         errors.New("invalid request body: unexpected EOF"),
			wantCode:    "REQ003",
			wantMessage: "Request could not be read",
		},
		{
			name:        "bad date filter maps correctly",
			err:         ValidationErrors{{Field: "dateFrom", Message: "invalid date (expected YYYY-MM-DD)"}},
			wantCode:    "VAL006",
			wantMessage: "Date is not valid",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("CONNECTION REFUSED"),
			wantCode:    "DB001",
			wantMessage: "Unable to reach the customer database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(errors.New("too many imports in progress"))

	expected := "System is busy processing other imports (Code: IMP001). Please wait a moment and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}
