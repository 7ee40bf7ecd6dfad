package core

// error_messages.go maps technical errors to user-friendly messages with a
// support code.
//
// # Error Codes Reference
//
// Store errors (DB):
//
//	DB001 - Connection refused: the customer database cannot be reached
//	        Patterns: "connection refused"
//	DB002 - Connection reset: the connection dropped mid-request
//	        Patterns: "connection reset"
//	DB003 - Timeout: the store did not answer in time
//	        Patterns: "timeout"
//	DB004 - Not found: the customer does not exist
//	        Patterns: "customer not found"
//	DB005 - Unavailable: the store rejected or failed the call
//	        Patterns: "store unavailable"
//
// Validation errors (VAL):
//
//	VAL001 - Required field is empty        "required field"
//	VAL002 - Website is not an http(s) url  "invalid website"
//	VAL003 - Value not in the allowed list  "invalid enum"
//	VAL004 - Country not in the catalog     "unknown country"
//	VAL005 - Sector not in the catalog      "unknown sector"
//	VAL006 - Date filter not YYYY-MM-DD     "invalid date"
//
// File errors (FILE):
//
//	FILE001 - File too large          "file too large"
//	FILE002 - Invalid CSV             "invalid csv"
//	FILE003 - Invalid spreadsheet     "invalid spreadsheet"
//	FILE004 - Invalid backup file     "invalid backup"
//	FILE005 - No file selected        "no file provided"
//	FILE006 - Empty file              "empty file"
//	FILE007 - Unsupported format      "unsupported format"
//
// Import (IMP001 "too many imports"), AI providers (AI001 "no ai provider",
// AI002 "ai unavailable"), request lifecycle (REQ001 "context canceled",
// REQ002 "context deadline exceeded", REQ003 "invalid request body") and
// rate limiting (RATE001 "rate limit") complete the table. ERR000 is the
// fallback; check the logs for the original error when a user reports it.
//
// Patterns are matched case-insensitively with strings.Contains. The first
// match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Store
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the customer database",
			Action:  "Changes are kept locally; try reloading in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The customer database did not respond in time",
			Action:  "Please try again later",
			Code:    "DB003",
		},
	},
	{
		pattern: "customer not found",
		msg: UserMessage{
			Message: "Customer not found",
			Action:  "Reload the list; the record may have been deleted",
			Code:    "DB004",
		},
	},
	{
		pattern: "store unavailable",
		msg: UserMessage{
			Message: "The customer database is unavailable",
			Action:  "Changes are kept locally; try reloading later",
			Code:    "DB005",
		},
	},

	// Validation
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in country, company name, sector and action note",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid website",
		msg: UserMessage{
			Message: "Website address is not valid",
			Action:  "Start the address with http:// or https://",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid enum",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Check the allowed values for this field",
			Code:    "VAL003",
		},
	},
	{
		pattern: "unknown country",
		msg: UserMessage{
			Message: "Country is not in the list",
			Action:  "Pick a country from the list",
			Code:    "VAL004",
		},
	},
	{
		pattern: "unknown sector",
		msg: UserMessage{
			Message: "Sector is not in the list",
			Action:  "Pick a sector from the list",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Date is not valid",
			Action:  "Use the YYYY-MM-DD format",
			Code:    "VAL006",
		},
	},

	// Files
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller parts",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid spreadsheet",
		msg: UserMessage{
			Message: "File is not a readable Excel workbook",
			Action:  "Save the file as .xlsx and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "invalid backup",
		msg: UserMessage{
			Message: "File is not a valid backup",
			Action:  "Use a JSON file produced by the backup export",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a file to import",
			Code:    "FILE005",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Download the template and fill in at least one row",
			Code:    "FILE006",
		},
	},
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "File format is not supported",
			Action:  "Use .xlsx, .csv or .json",
			Code:    "FILE007",
		},
	},

	// Import
	{
		pattern: "too many imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "IMP001",
		},
	},

	// AI providers
	{
		pattern: "no ai provider",
		msg: UserMessage{
			Message: "AI analysis is not configured",
			Action:  "Set GEMINI_API_KEY or OPENAI_API_KEY",
			Code:    "AI001",
		},
	},
	{
		pattern: "ai unavailable",
		msg: UserMessage{
			Message: "AI service is currently unavailable",
			Action:  "Please try again later",
			Code:    "AI002",
		},
	},

	// Request lifecycle
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again or check your connection",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "Request could not be read",
			Action:  "Send the data as JSON",
			Code:    "REQ003",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback message with code ERR000 is
// returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
