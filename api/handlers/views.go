package handlers

import (
	"time"

	"github.com/linesmerrill/lifeline-api/models"
	"github.com/linesmerrill/lifeline-api/policy"
)

// AccidentView is an accident with its badge colours and the one status
// action the principal may take on it.
type AccidentView struct {
	models.Accident
	PriorityTone models.Tone            `json:"priority_tone"`
	StatusTone   models.Tone            `json:"status_tone"`
	NextStatus   *models.AccidentStatus `json:"next_status,omitempty"`
}

func accidentView(a models.Accident, p policy.Principal) AccidentView {
	v := AccidentView{
		Accident:     a,
		PriorityTone: a.Priority.Tone(),
		StatusTone:   a.Status.Tone(),
	}
	if policy.CanTransitionAccidentStatus(p.Role) {
		if next, ok := a.Status.Next(); ok {
			v.NextStatus = &next
		}
	}
	return v
}

func accidentViews(in []models.Accident, p policy.Principal) []AccidentView {
	out := make([]AccidentView, 0, len(in))
	for _, a := range in {
		out = append(out, accidentView(a, p))
	}
	return out
}

// MedicalIDView is a medical ID with the holder's age and whether the
// principal may delete it.
type MedicalIDView struct {
	models.MedicalID
	Age           *int        `json:"age,omitempty"`
	BloodTypeTone models.Tone `json:"blood_type_tone"`
	CanDelete     bool        `json:"can_delete"`
}

func medicalIDView(m models.MedicalID, p policy.Principal, today time.Time) MedicalIDView {
	v := MedicalIDView{
		MedicalID:     m,
		BloodTypeTone: models.BloodTypeTone(m.BloodType),
		CanDelete:     policy.CanDeleteMedicalID(p, m.CreatedBy),
	}
	if age, err := m.Age(today); err == nil {
		v.Age = &age
	}
	return v
}

func medicalIDViews(in []models.MedicalID, p policy.Principal, today time.Time) []MedicalIDView {
	out := make([]MedicalIDView, 0, len(in))
	for _, m := range in {
		out = append(out, medicalIDView(m, p, today))
	}
	return out
}
