package models

import (
	"fmt"
	"time"
)

// Priority is the urgency of an emergency report.
type Priority string

// AccidentStatus is the lifecycle position of an emergency report.
type AccidentStatus string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"

	StatusActive    AccidentStatus = "active"
	StatusResponded AccidentStatus = "responded"
	StatusResolved  AccidentStatus = "resolved"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Valid reports whether s is a known status.
func (s AccidentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusResponded, StatusResolved:
		return true
	}
	return false
}

// accidentTransitions is the only way an accident status may move.
var accidentTransitions = map[AccidentStatus]AccidentStatus{
	StatusActive:    StatusResponded,
	StatusResponded: StatusResolved,
}

// Next returns the status that follows s, if any.
func (s AccidentStatus) Next() (AccidentStatus, bool) {
	next, ok := accidentTransitions[s]
	return next, ok
}

// CanTransition reports whether an accident may move from one status to another.
func CanTransition(from, to AccidentStatus) bool {
	next, ok := from.Next()
	return ok && next == to
}

// CheckTransition returns ErrInvalidTransition when from → to is not allowed.
func CheckTransition(from, to AccidentStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Accident holds the structure for the accidents collection in mongo
type Accident struct {
	ID                  string         `json:"id" bson:"_id"`
	Type                string         `json:"type" bson:"type"`
	Description         string         `json:"description" bson:"description"`
	Location            string         `json:"location" bson:"location"`
	Latitude            *float64       `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude           *float64       `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Priority            Priority       `json:"priority" bson:"priority"`
	Status              AccidentStatus `json:"status" bson:"status"`
	ReporterName        string         `json:"reporter_name" bson:"reporter_name"`
	ReporterPhone       string         `json:"reporter_phone" bson:"reporter_phone"`
	ReporterID          string         `json:"reporter_id" bson:"reporter_id"`
	AssignedAmbulanceID string         `json:"assigned_ambulance_id,omitempty" bson:"assigned_ambulance_id,omitempty"`
	CreatedAt           time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" bson:"updated_at"`
}

// AccidentDraft is the "Report New Emergency" form.
type AccidentDraft struct {
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Priority      Priority `json:"priority"`
	ReporterName  string   `json:"reporter_name"`
	ReporterPhone string   `json:"reporter_phone"`
}

// NewAccidentDraft returns the empty form, which starts at medium priority.
func NewAccidentDraft() AccidentDraft {
	return AccidentDraft{Priority: PriorityMedium}
}

// Validate checks that type, description and location are filled in.
func (d AccidentDraft) Validate() error {
	if blank(d.Type) || blank(d.Description) || blank(d.Location) {
		return ErrMissingFields
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return fmt.Errorf("%w: priority %q", ErrInvalidValue, d.Priority)
	}
	return nil
}

// Accident builds the record to insert. The status is always active and the
// reporter is always the principal submitting the form.
func (d AccidentDraft) Accident(reporterID string) Accident {
	priority := d.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	return Accident{
		Type:          d.Type,
		Description:   d.Description,
		Location:      d.Location,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		Priority:      priority,
		Status:        StatusActive,
		ReporterName:  d.ReporterName,
		ReporterPhone: d.ReporterPhone,
		ReporterID:    reporterID,
	}
}
