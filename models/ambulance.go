package models

import (
	"fmt"
	"time"
)

// AmbulanceStatus is the readiness of an ambulance.
type AmbulanceStatus string

const (
	AmbulanceAvailable   AmbulanceStatus = "available"
	AmbulanceDispatched  AmbulanceStatus = "dispatched"
	AmbulanceMaintenance AmbulanceStatus = "maintenance"
)

// Valid reports whether s is a known ambulance status.
func (s AmbulanceStatus) Valid() bool {
	switch s {
	case AmbulanceAvailable, AmbulanceDispatched, AmbulanceMaintenance:
		return true
	}
	return false
}

// Ambulance holds the structure for the ambulances collection in mongo
type Ambulance struct {
	ID        string          `json:"id" bson:"_id"`
	CallSign  string          `json:"call_sign" bson:"call_sign"`
	Status    AmbulanceStatus `json:"status" bson:"status"`
	Location  string          `json:"location" bson:"location"`
	Crew      string          `json:"crew" bson:"crew"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// AmbulanceDraft is the form for registering an ambulance.
type AmbulanceDraft struct {
	CallSign string `json:"call_sign"`
	Location string `json:"location"`
	Crew     string `json:"crew"`
}

// Validate checks that the call sign is filled in.
func (d AmbulanceDraft) Validate() error {
	if blank(d.CallSign) {
		return ErrMissingFields
	}
	return nil
}

// Ambulance builds the record to insert. New ambulances start available.
func (d AmbulanceDraft) Ambulance() Ambulance {
	return Ambulance{
		CallSign: d.CallSign,
		Location: d.Location,
		Crew:     d.Crew,
		Status:   AmbulanceAvailable,
	}
}

// CheckAmbulanceStatus rejects unknown ambulance statuses.
func CheckAmbulanceStatus(s AmbulanceStatus) error {
	if !s.Valid() {
		return fmt.Errorf("%w: ambulance status %q", ErrInvalidValue, s)
	}
	return nil
}
