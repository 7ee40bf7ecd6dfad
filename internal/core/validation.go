package core

// validation.go holds the shared record validation.
//
// Validation runs at every boundary that accepts customer data: the entry
// form, the persistence gateway and the importer. Each field is described by a
// FieldSpec; ValidateInput walks the table and collects every problem rather
// than stopping at the first one.

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType represents the kind of check applied to a field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldURL
)

// FieldSpec describes one customer field.
type FieldSpec struct {
	Name       string // JSON field name
	Label      string // Human-readable name used in messages
	DBColumn   string // Column in the customers table
	Type       FieldType
	Required   bool
	EnumValues []string
}

// CustomerFields lists the mutable customer fields in form order.
var CustomerFields = []FieldSpec{
	{Name: "country", Label: "Country", DBColumn: "country", Type: FieldText, Required: true},
	{Name: "companyName", Label: "Company Name", DBColumn: "company_name", Type: FieldText, Required: true},
	{Name: "website", Label: "Website", DBColumn: "website", Type: FieldURL},
	{Name: "sector", Label: "Sector", DBColumn: "sector", Type: FieldText, Required: true},
	{Name: "interestStatus", Label: "Interest Status", DBColumn: "interest_status", Type: FieldEnum, Required: true,
		EnumValues: []string{string(InterestYes), string(InterestNo)}},
	{Name: "priority", Label: "Priority", DBColumn: "priority", Type: FieldEnum, Required: true,
		EnumValues: []string{string(PriorityHigh), string(PriorityMedium), string(PriorityLow)}},
	{Name: "actionNote", Label: "Action Note", DBColumn: "action_note", Type: FieldText, Required: true},
	{Name: "followUpStatus", Label: "Follow Up Status", DBColumn: "follow_up_status", Type: FieldEnum, Required: true,
		EnumValues: []string{string(FollowUpNone), string(FollowUpFirst), string(FollowUpSecond)}},
}

// websitePattern matches an absolute http(s) URL.
var websitePattern = regexp.MustCompile(`^https?://.+`)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every problem found in one input.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Validation messages. MapError keys on these phrases.
const (
	msgRequired       = "required field is empty"
	msgInvalidURL     = "invalid website url (must start with http:// or https://)"
	msgInvalidEnum    = "invalid enum value"
	msgUnknownCountry = "unknown country"
	msgUnknownSector  = "unknown sector"
)

// ValidateInput checks in against CustomerFields.
// It returns nil or a ValidationErrors value.
func ValidateInput(in Input) error {
	var errs ValidationErrors

	for _, spec := range CustomerFields {
		raw := fieldValue(in, spec.Name)
		value := strings.TrimSpace(raw)

		if value == "" {
			if spec.Required {
				errs = append(errs, ValidationError{Field: spec.Name, Message: msgRequired})
			}
			continue
		}

		if err := ValidateValue(value, spec); err != nil {
			errs = append(errs, ValidationError{Field: spec.Name, Value: raw, Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateEntry runs ValidateInput and also requires country and sector to
// come from the catalog. Used only where a person types the record in.
func ValidateEntry(in Input, catalog Catalog) error {
	var errs ValidationErrors
	if err := ValidateInput(in); err != nil {
		errs = append(errs, err.(ValidationErrors)...)
	}

	if in.Country != "" && !catalog.HasCountry(in.Country) {
		errs = append(errs, ValidationError{Field: "country", Value: in.Country, Message: msgUnknownCountry})
	}
	if in.Sector != "" && !catalog.HasSector(in.Sector) {
		errs = append(errs, ValidationError{Field: "sector", Value: in.Sector, Message: msgUnknownSector})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateValue validates a single non-empty value against its spec.
func ValidateValue(value string, spec FieldSpec) error {
	switch spec.Type {
	case FieldURL:
		if !websitePattern.MatchString(value) {
			return fmt.Errorf("%s", msgInvalidURL)
		}
	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if ev == value {
				return nil
			}
		}
		return fmt.Errorf("%s (allowed: %s)", msgInvalidEnum, strings.Join(spec.EnumValues, ", "))
	}
	return nil
}

// Spec returns the FieldSpec for a JSON field name.
func Spec(name string) (FieldSpec, bool) {
	for _, spec := range CustomerFields {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

func fieldValue(in Input, name string) string {
	switch name {
	case "country":
		return in.Country
	case "companyName":
		return in.CompanyName
	case "website":
		return in.Website
	case "sector":
		return in.Sector
	case "interestStatus":
		return string(in.InterestStatus)
	case "priority":
		return string(in.Priority)
	case "actionNote":
		return in.ActionNote
	case "followUpStatus":
		return string(in.FollowUpStatus)
	}
	return ""
}
