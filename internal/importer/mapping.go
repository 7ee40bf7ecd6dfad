package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tradescout/tradescout/internal/core"
)

// aliases lists accepted header names per field, in match priority order.
var aliases = map[string][]string{
	"country":        {"Ülke", "Country", "ülke", "country"},
	"companyName":    {"Firma Adı", "Company Name", "firma_adi", "company_name", "Firma", "companyName"},
	"website":        {"Web Sitesi", "Website", "web_sitesi", "website"},
	"sector":         {"Sektör", "Sector", "sektor", "sector"},
	"interestStatus": {"İlgi Durumu", "Interest Status", "ilgi_durumu", "interest_status", "interestStatus"},
	"priority":       {"Öncelik", "Priority", "oncelik", "priority"},
	"actionNote":     {"Aksiyon Notu", "Action Note", "aksiyon_notu", "action_note", "actionNote"},
	"followUpStatus": {"Takip Durumu", "Follow Up Status", "takip_durumu", "follow_up_status", "followUpStatus"},
}

// Headers returns the canonical (Turkish) header row used by templates and
// exports.
func Headers() []string {
	out := make([]string, len(core.CustomerFields))
	for i, spec := range core.CustomerFields {
		out[i] = aliases[spec.Name][0]
	}
	return out
}

// row is one data row keyed by field name. number is 1-based and excludes
// the header.
type row struct {
	number  int
	values  map[string]string
	problem string // set when the row could not be read at all
}

// mapHeader resolves each field to a column: exact alias first, then a
// case-insensitive alias match.
func mapHeader(header []string) map[string]int {
	exact := make(map[string]int, len(header))
	for i, h := range header {
		key := core.CleanCell(h)
		if _, seen := exact[key]; !seen {
			exact[key] = i
		}
	}
	folded := core.MakeHeaderIndex(header)

	columns := make(map[string]int)
	for _, spec := range core.CustomerFields {
		if col, ok := lookupAlias(spec.Name, exact, folded); ok {
			columns[spec.Name] = col
		}
	}
	return columns
}

func lookupAlias(field string, exact, folded map[string]int) (int, bool) {
	for _, a := range aliases[field] {
		if col, ok := exact[a]; ok {
			return col, true
		}
	}
	for _, a := range aliases[field] {
		if col, ok := folded[strings.ToLower(a)]; ok {
			return col, true
		}
	}
	return 0, false
}

// buildInput normalizes one row and validates it. Empty enum cells take the
// form defaults; unrecognised enum values are errors.
func buildInput(values map[string]string) (core.Input, []string) {
	get := func(field string) string { return core.CleanCell(values[field]) }

	in := core.Input{
		Country:     get("country"),
		CompanyName: get("companyName"),
		Website:     get("website"),
		Sector:      get("sector"),
		ActionNote:  get("actionNote"),
	}

	var problems []string
	if v := get("interestStatus"); v != "" {
		if s, ok := core.ParseInterest(v); ok {
			in.InterestStatus = s
		} else {
			problems = append(problems, fmt.Sprintf("invalid interest status %q (expected Evet/Hayır or Yes/No)", v))
		}
	}
	if v := get("priority"); v != "" {
		if p, ok := core.ParsePriority(v); ok {
			in.Priority = p
		} else {
			problems = append(problems, fmt.Sprintf("invalid priority %q (expected Yüksek/Orta/Düşük or High/Medium/Low)", v))
		}
	}
	if v := get("followUpStatus"); v != "" {
		if f, ok := core.ParseFollowUp(v); ok {
			in.FollowUpStatus = f
		} else {
			problems = append(problems, fmt.Sprintf("invalid follow up status %q (expected 1. Takip/2. Takip/Yok)", v))
		}
	}
	in = in.WithDefaults()

	if err := core.ValidateInput(in); err != nil {
		var ve core.ValidationErrors
		if errors.As(err, &ve) {
			for _, e := range ve {
				problems = append(problems, describe(e))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return core.Input{}, problems
	}
	return in, nil
}

func describe(e core.ValidationError) string {
	spec, _ := core.Spec(e.Field)
	switch {
	case e.Value == "":
		return spec.Label + " is required"
	case spec.Type == core.FieldURL:
		return fmt.Sprintf("invalid website %q (must start with http:// or https://)", e.Value)
	}
	return fmt.Sprintf("%s: %s", spec.Label, e.Message)
}
