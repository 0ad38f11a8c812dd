package models

import "time"

// DateLayout is the wire format of date_of_birth.
const DateLayout = "2006-01-02"

// MedicalID holds the structure for the medical_ids collection in mongo
type MedicalID struct {
	ID                    string    `json:"id" bson:"_id"`
	FullName              string    `json:"full_name" bson:"full_name"`
	DateOfBirth           string    `json:"date_of_birth" bson:"date_of_birth"`
	BloodType             string    `json:"blood_type" bson:"blood_type"`
	Allergies             *string   `json:"allergies" bson:"allergies"`
	Medications           *string   `json:"medications" bson:"medications"`
	MedicalConditions     *string   `json:"medical_conditions" bson:"medical_conditions"`
	EmergencyContactName  string    `json:"emergency_contact_name" bson:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone" bson:"emergency_contact_phone"`
	CreatedBy             string    `json:"created_by" bson:"created_by"`
	CreatedAt             time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" bson:"updated_at"`
}

// MedicalIDDraft is the "Create New Medical ID" form.
type MedicalIDDraft struct {
	FullName              string `json:"full_name"`
	DateOfBirth           string `json:"date_of_birth"`
	BloodType             string `json:"blood_type"`
	Allergies             string `json:"allergies"`
	Medications           string `json:"medications"`
	MedicalConditions     string `json:"medical_conditions"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

// Validate checks that full name, date of birth and blood type are filled in.
func (d MedicalIDDraft) Validate() error {
	if blank(d.FullName) || blank(d.DateOfBirth) || blank(d.BloodType) {
		return ErrMissingFields
	}
	return nil
}

// MedicalID builds the record to insert, owned by createdBy.
func (d MedicalIDDraft) MedicalID(createdBy string) MedicalID {
	return MedicalID{
		FullName:              d.FullName,
		DateOfBirth:           d.DateOfBirth,
		BloodType:             d.BloodType,
		Allergies:             optional(d.Allergies),
		Medications:           optional(d.Medications),
		MedicalConditions:     optional(d.MedicalConditions),
		EmergencyContactName:  d.EmergencyContactName,
		EmergencyContactPhone: d.EmergencyContactPhone,
		CreatedBy:             createdBy,
	}
}

func optional(s string) *string {
	if blank(s) {
		return nil
	}
	return &s
}

// Age returns whole years between dateOfBirth and today. The year count is
// reduced by one until the birthday has been reached in today's year.
func Age(dateOfBirth, today time.Time) int {
	age := today.Year() - dateOfBirth.Year()
	if today.Month() < dateOfBirth.Month() ||
		(today.Month() == dateOfBirth.Month() && today.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// Age parses DateOfBirth and returns the holder's age on today.
func (m MedicalID) Age(today time.Time) (int, error) {
	dob, err := time.Parse(DateLayout, m.DateOfBirth)
	if err != nil {
		return 0, err
	}
	return Age(dob, today), nil
}
