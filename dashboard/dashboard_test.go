package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lifeline-api/dashboard"
	"github.com/linesmerrill/lifeline-api/databases/mocks"
	"github.com/linesmerrill/lifeline-api/models"
	"github.com/linesmerrill/lifeline-api/policy"
)

func alerts(n int) []models.AlertLog {
	out := make([]models.AlertLog, n)
	for i := range out {
		out[i] = models.AlertLog{ID: string(rune('a' + i))}
	}
	return out
}

func TestBuildCapsAlertsAndHidesUsers(t *testing.T) {
	in := dashboard.Inputs{
		ActiveAccidents:     []models.Accident{{ID: "1"}, {ID: "2"}},
		AvailableAmbulances: []models.Ambulance{{ID: "m1"}},
		MedicalIDCount:      12,
		UserCount:           4,
		RecentAlerts:        alerts(8),
	}

	stats := dashboard.Build(in, policy.Responder)
	assert.Equal(t, 2, stats.ActiveEmergencies)
	assert.Equal(t, 1, stats.AvailableAmbulances)
	assert.Equal(t, int64(12), stats.TotalMedicalIDs)
	assert.Len(t, stats.RecentAlerts, dashboard.RecentAlertLimit)
	assert.Equal(t, "a", stats.RecentAlerts[0].ID)
	assert.False(t, stats.ShowUserCount)
	assert.Zero(t, stats.TotalUsers)

	admin := dashboard.Build(in, policy.Admin)
	assert.True(t, admin.ShowUserCount)
	assert.Equal(t, int64(4), admin.TotalUsers)
}

func TestBuildEmptyInputs(t *testing.T) {
	stats := dashboard.Build(dashboard.Inputs{}, policy.Dispatcher)

	assert.NotNil(t, stats.RecentAlerts)
	assert.NotNil(t, stats.ActiveAccidents)
	assert.Zero(t, stats.ActiveEmergencies)
}

func loader() (dashboard.Loader, *mocks.AccidentDatabase, *mocks.AmbulanceDatabase, *mocks.MedicalIDDatabase, *mocks.ProfileDatabase, *mocks.AlertLogDatabase) {
	acc := &mocks.AccidentDatabase{}
	amb := &mocks.AmbulanceDatabase{}
	mid := &mocks.MedicalIDDatabase{}
	prof := &mocks.ProfileDatabase{}
	al := &mocks.AlertLogDatabase{}
	return dashboard.Loader{Accidents: acc, Ambulances: amb, MedicalIDs: mid, Profiles: prof, Alerts: al}, acc, amb, mid, prof, al
}

func TestLoaderSkipsUserCountForResponder(t *testing.T) {
	l, acc, amb, mid, prof, al := loader()
	acc.On("Find", mock.Anything, bson.M{"status": models.StatusActive}).Return([]models.Accident{{ID: "1"}}, nil)
	amb.On("Find", mock.Anything, bson.M{"status": models.AmbulanceAvailable}).Return([]models.Ambulance{{ID: "m"}, {ID: "n"}}, nil)
	mid.On("Count", mock.Anything).Return(int64(3), nil)
	al.On("Recent", mock.Anything, int64(5)).Return(alerts(2), nil)

	stats := l.Load(context.Background(), policy.NewPrincipal("u-1", "r@example.com", "responder"))

	assert.Equal(t, 1, stats.ActiveEmergencies)
	assert.Equal(t, 2, stats.AvailableAmbulances)
	assert.Equal(t, int64(3), stats.TotalMedicalIDs)
	assert.Len(t, stats.RecentAlerts, 2)
	prof.AssertNotCalled(t, "Count", mock.Anything)
}

func TestLoaderKeepsGoingWhenAQueryFails(t *testing.T) {
	l, acc, amb, mid, prof, al := loader()
	acc.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	amb.On("Find", mock.Anything, mock.Anything).Return([]models.Ambulance{{ID: "m"}}, nil)
	mid.On("Count", mock.Anything).Return(int64(0), errors.New("timeout"))
	prof.On("Count", mock.Anything).Return(int64(9), nil)
	al.On("Recent", mock.Anything, int64(5)).Return(alerts(1), nil)

	stats := l.Load(context.Background(), policy.NewPrincipal("a-1", "a@example.com", "admin"))

	assert.Zero(t, stats.ActiveEmergencies)
	assert.Equal(t, 1, stats.AvailableAmbulances)
	assert.Equal(t, int64(9), stats.TotalUsers)
	assert.True(t, stats.ShowUserCount)
	prof.AssertCalled(t, "Count", mock.Anything)
}
