package models

// Tone is the colour family a badge is drawn in.
type Tone string

const (
	ToneEmergency Tone = "emergency"
	ToneWarning   Tone = "warning"
	ToneInfo      Tone = "info"
	ToneSuccess   Tone = "success"
	ToneMuted     Tone = "muted"
)

// Tone returns the badge colour for a priority.
func (p Priority) Tone() Tone {
	switch p {
	case PriorityCritical:
		return ToneEmergency
	case PriorityHigh:
		return ToneWarning
	case PriorityMedium:
		return ToneInfo
	case PriorityLow:
		return ToneSuccess
	}
	return ToneMuted
}

// Tone returns the badge colour for an accident status.
func (s AccidentStatus) Tone() Tone {
	switch s {
	case StatusActive:
		return ToneEmergency
	case StatusResponded:
		return ToneWarning
	case StatusResolved:
		return ToneSuccess
	}
	return ToneMuted
}

var bloodTypeTones = map[string]Tone{
	"A+":  "red-light",
	"A-":  "red",
	"B+":  "blue-light",
	"B-":  "blue",
	"AB+": "purple-light",
	"AB-": "purple",
	"O+":  "green-light",
	"O-":  "yellow-light",
}

// BloodTypeTone returns the badge colour for a blood type.
func BloodTypeTone(bloodType string) Tone {
	if t, ok := bloodTypeTones[bloodType]; ok {
		return t
	}
	return ToneMuted
}
