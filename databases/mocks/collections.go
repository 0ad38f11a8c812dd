package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linesmerrill/lifeline-api/models"
)

// AccidentDatabase is a mock type for the AccidentDatabase type
type AccidentDatabase struct {
	mock.Mock
}

// Find provides a mock function with given fields: ctx, filter
func (_m *AccidentDatabase) Find(ctx context.Context, filter interface{}) ([]models.Accident, error) {
	ret := _m.Called(ctx, filter)
	r0, _ := ret.Get(0).([]models.Accident)
	return r0, ret.Error(1)
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *AccidentDatabase) FindByID(ctx context.Context, id string) (*models.Accident, error) {
	ret := _m.Called(ctx, id)
	r0, _ := ret.Get(0).(*models.Accident)
	return r0, ret.Error(1)
}

// Insert provides a mock function with given fields: ctx, accident
func (_m *AccidentDatabase) Insert(ctx context.Context, accident *models.Accident) error {
	return _m.Called(ctx, accident).Error(0)
}

// UpdateStatus provides a mock function with given fields: ctx, id, from, to
func (_m *AccidentDatabase) UpdateStatus(ctx context.Context, id string, from, to models.AccidentStatus) error {
	return _m.Called(ctx, id, from, to).Error(0)
}

// AssignAmbulance provides a mock function with given fields: ctx, id, ambulanceID
func (_m *AccidentDatabase) AssignAmbulance(ctx context.Context, id, ambulanceID string) error {
	return _m.Called(ctx, id, ambulanceID).Error(0)
}

// MedicalIDDatabase is a mock type for the MedicalIDDatabase type
type MedicalIDDatabase struct {
	mock.Mock
}

// Find provides a mock function with given fields: ctx, filter
func (_m *MedicalIDDatabase) Find(ctx context.Context, filter interface{}) ([]models.MedicalID, error) {
	ret := _m.Called(ctx, filter)
	r0, _ := ret.Get(0).([]models.MedicalID)
	return r0, ret.Error(1)
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *MedicalIDDatabase) FindByID(ctx context.Context, id string) (*models.MedicalID, error) {
	ret := _m.Called(ctx, id)
	r0, _ := ret.Get(0).(*models.MedicalID)
	return r0, ret.Error(1)
}

// Insert provides a mock function with given fields: ctx, medicalID
func (_m *MedicalIDDatabase) Insert(ctx context.Context, medicalID *models.MedicalID) error {
	return _m.Called(ctx, medicalID).Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MedicalIDDatabase) Delete(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

// Count provides a mock function with given fields: ctx
func (_m *MedicalIDDatabase) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).(int64)
	return r0, ret.Error(1)
}

// AmbulanceDatabase is a mock type for the AmbulanceDatabase type
type AmbulanceDatabase struct {
	mock.Mock
}

// Find provides a mock function with given fields: ctx, filter
func (_m *AmbulanceDatabase) Find(ctx context.Context, filter interface{}) ([]models.Ambulance, error) {
	ret := _m.Called(ctx, filter)
	r0, _ := ret.Get(0).([]models.Ambulance)
	return r0, ret.Error(1)
}

// Insert provides a mock function with given fields: ctx, ambulance
func (_m *AmbulanceDatabase) Insert(ctx context.Context, ambulance *models.Ambulance) error {
	return _m.Called(ctx, ambulance).Error(0)
}

// UpdateStatus provides a mock function with given fields: ctx, id, status
func (_m *AmbulanceDatabase) UpdateStatus(ctx context.Context, id string, status models.AmbulanceStatus) error {
	return _m.Called(ctx, id, status).Error(0)
}

// Dispatch provides a mock function with given fields: ctx, id
func (_m *AmbulanceDatabase) Dispatch(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

// Count provides a mock function with given fields: ctx, filter
func (_m *AmbulanceDatabase) Count(ctx context.Context, filter interface{}) (int64, error) {
	ret := _m.Called(ctx, filter)
	r0, _ := ret.Get(0).(int64)
	return r0, ret.Error(1)
}

// AlertLogDatabase is a mock type for the AlertLogDatabase type
type AlertLogDatabase struct {
	mock.Mock
}

// Recent provides a mock function with given fields: ctx, limit
func (_m *AlertLogDatabase) Recent(ctx context.Context, limit int64) ([]models.AlertLog, error) {
	ret := _m.Called(ctx, limit)
	r0, _ := ret.Get(0).([]models.AlertLog)
	return r0, ret.Error(1)
}

// Insert provides a mock function with given fields: ctx, alert
func (_m *AlertLogDatabase) Insert(ctx context.Context, alert *models.AlertLog) error {
	return _m.Called(ctx, alert).Error(0)
}

// ExistsForAccident provides a mock function with given fields: ctx, accidentID, alertType
func (_m *AlertLogDatabase) ExistsForAccident(ctx context.Context, accidentID string, alertType models.AlertType) (bool, error) {
	ret := _m.Called(ctx, accidentID, alertType)
	return ret.Bool(0), ret.Error(1)
}

// ProfileDatabase is a mock type for the ProfileDatabase type
type ProfileDatabase struct {
	mock.Mock
}

// FindByEmail provides a mock function with given fields: ctx, email
func (_m *ProfileDatabase) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	ret := _m.Called(ctx, email)
	r0, _ := ret.Get(0).(*models.Profile)
	return r0, ret.Error(1)
}

// Find provides a mock function with given fields: ctx
func (_m *ProfileDatabase) Find(ctx context.Context) ([]models.Profile, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).([]models.Profile)
	return r0, ret.Error(1)
}

// Count provides a mock function with given fields: ctx
func (_m *ProfileDatabase) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).(int64)
	return r0, ret.Error(1)
}
