// Package filter narrows an already fetched collection by search term,
// status and priority. It never touches the store.
package filter

import (
	"net/url"
	"strings"

	"github.com/linesmerrill/lifeline-api/models"
)

// All is the sentinel filter value meaning "no restriction".
const All = "all"

// Criteria is the active local filter of a list.
type Criteria struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// FromQuery reads search, status and priority from query parameters.
func FromQuery(q url.Values) Criteria {
	return Criteria{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	}
}

// Active reports whether any part of c restricts the result.
func (c Criteria) Active() bool {
	return c.Search != "" || restricts(c.Status) || restricts(c.Priority)
}

func restricts(v string) bool {
	return v != "" && v != All
}

// equal is true when the filter value is the sentinel or matches exactly.
func equal(filter, value string) bool {
	return !restricts(filter) || filter == value
}

// contains is a case-insensitive substring match against any field.
func contains(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Apply returns the items of in that match, preserving order.
func Apply[T any](in []T, c Criteria, match func(T, Criteria) bool) []T {
	out := make([]T, 0, len(in))
	for _, item := range in {
		if match(item, c) {
			out = append(out, item)
		}
	}
	return out
}

// Accident matches on type, description and location, plus status and priority.
func Accident(a models.Accident, c Criteria) bool {
	return contains(c.Search, a.Type, a.Description, a.Location) &&
		equal(c.Status, string(a.Status)) &&
		equal(c.Priority, string(a.Priority))
}

// MedicalID matches on full name, blood type and emergency contact name.
func MedicalID(m models.MedicalID, c Criteria) bool {
	return contains(c.Search, m.FullName, m.BloodType, m.EmergencyContactName)
}

// Ambulance matches on call sign, location and crew, plus status.
func Ambulance(a models.Ambulance, c Criteria) bool {
	return contains(c.Search, a.CallSign, a.Location, a.Crew) &&
		equal(c.Status, string(a.Status))
}

// Accidents filters a list of accidents.
func Accidents(in []models.Accident, c Criteria) []models.Accident {
	return Apply(in, c, Accident)
}

// MedicalIDs filters a list of medical IDs.
func MedicalIDs(in []models.MedicalID, c Criteria) []models.MedicalID {
	return Apply(in, c, MedicalID)
}

// Ambulances filters a list of ambulances.
func Ambulances(in []models.Ambulance, c Criteria) []models.Ambulance {
	return Apply(in, c, Ambulance)
}
