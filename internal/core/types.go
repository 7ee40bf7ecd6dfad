package core

import (
	"strings"
	"time"
)

// InterestStatus records whether the prospect showed interest.
type InterestStatus string

const (
	InterestYes InterestStatus = "yes"
	InterestNo  InterestStatus = "no"
)

// Valid reports whether s is one of the allowed values.
func (s InterestStatus) Valid() bool {
	return s == InterestYes || s == InterestNo
}

// Priority is the sales priority of a prospect.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// FollowUpStatus tracks how many follow-ups have been made.
type FollowUpStatus string

const (
	FollowUpNone   FollowUpStatus = "none"
	FollowUpFirst  FollowUpStatus = "first-follow"
	FollowUpSecond FollowUpStatus = "second-follow"
)

func (f FollowUpStatus) Valid() bool {
	switch f {
	case FollowUpNone, FollowUpFirst, FollowUpSecond:
		return true
	}
	return false
}

// Record is a prospective trade customer.
type Record struct {
	ID             string         `json:"id"`
	Country        string         `json:"country"`
	CompanyName    string         `json:"companyName"`
	Website        string         `json:"website,omitempty"`
	Sector         string         `json:"sector"`
	InterestStatus InterestStatus `json:"interestStatus"`
	Priority       Priority       `json:"priority"`
	ActionNote     string         `json:"actionNote"`
	FollowUpStatus FollowUpStatus `json:"followUpStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Input is the form payload for creating or overwriting a record.
type Input struct {
	Country        string         `json:"country"`
	CompanyName    string         `json:"companyName"`
	Website        string         `json:"website,omitempty"`
	Sector         string         `json:"sector"`
	InterestStatus InterestStatus `json:"interestStatus"`
	Priority       Priority       `json:"priority"`
	ActionNote     string         `json:"actionNote"`
	FollowUpStatus FollowUpStatus `json:"followUpStatus"`
}

// Normalize trims every text field.
func (in Input) Normalize() Input {
	in.Country = strings.TrimSpace(in.Country)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Website = strings.TrimSpace(in.Website)
	in.Sector = strings.TrimSpace(in.Sector)
	in.ActionNote = strings.TrimSpace(in.ActionNote)
	in.InterestStatus = InterestStatus(strings.TrimSpace(string(in.InterestStatus)))
	in.Priority = Priority(strings.TrimSpace(string(in.Priority)))
	in.FollowUpStatus = FollowUpStatus(strings.TrimSpace(string(in.FollowUpStatus)))
	return in
}

// WithDefaults fills unset enum fields with the entry form defaults.
func (in Input) WithDefaults() Input {
	if in.InterestStatus == "" {
		in.InterestStatus = InterestYes
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.FollowUpStatus == "" {
		in.FollowUpStatus = FollowUpNone
	}
	return in
}

// Apply overwrites every mutable field of r with in. ID and CreatedAt are kept.
func (r Record) Apply(in Input) Record {
	r.Country = in.Country
	r.CompanyName = in.CompanyName
	r.Website = in.Website
	r.Sector = in.Sector
	r.InterestStatus = in.InterestStatus
	r.Priority = in.Priority
	r.ActionNote = in.ActionNote
	r.FollowUpStatus = in.FollowUpStatus
	return r
}

// Input returns the mutable fields of r.
func (r Record) Input() Input {
	return Input{
		Country:        r.Country,
		CompanyName:    r.CompanyName,
		Website:        r.Website,
		Sector:         r.Sector,
		InterestStatus: r.InterestStatus,
		Priority:       r.Priority,
		ActionNote:     r.ActionNote,
		FollowUpStatus: r.FollowUpStatus,
	}
}

// NewRecord builds a record from input with the given identity.
func NewRecord(id string, createdAt time.Time, in Input) Record {
	return Record{ID: id, CreatedAt: createdAt}.Apply(in)
}
