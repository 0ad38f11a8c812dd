package models

import "time"

// AlertType classifies an alert log entry.
type AlertType string

const (
	AlertEmergencyCall AlertType = "emergency_call"
	AlertMedical       AlertType = "medical_alert"
	AlertSystem        AlertType = "system_alert"
)

// AlertLog holds the structure for the alert_logs collection in mongo. The
// Accident field is only populated by joined reads.
type AlertLog struct {
	ID         string    `json:"id" bson:"_id"`
	Type       AlertType `json:"type" bson:"type"`
	Message    string    `json:"message" bson:"message"`
	AccidentID string    `json:"accident_id,omitempty" bson:"accident_id,omitempty"`
	Accident   *Accident `json:"accident,omitempty" bson:"accident,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
