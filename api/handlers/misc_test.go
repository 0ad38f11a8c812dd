package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/api/handlers"
	"github.com/linesmerrill/lifeline-api/dashboard"
	"github.com/linesmerrill/lifeline-api/databases/mocks"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/models"
)

func TestAlertsHandlerCapsLimit(t *testing.T) {
	db := &mocks.AlertLogDatabase{}
	db.On("Recent", mock.Anything, int64(200)).Return([]models.AlertLog{{ID: "l1", Type: models.AlertSystem}}, nil)
	a := handlers.AlertLog{DB: db}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AlertsHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/?limit=1000", nil), "d1", "dispatcher"))

	assert.Equal(t, http.StatusOK, rr.Code)
	db.AssertExpectations(t)
}

func TestAlertsHandlerDefaultLimit(t *testing.T) {
	db := &mocks.AlertLogDatabase{}
	db.On("Recent", mock.Anything, int64(50)).Return(nil, nil)
	a := handlers.AlertLog{DB: db}

	rr := httptest.NewRecorder()
	http.HandlerFunc(a.AlertsHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/?limit=abc", nil), "d1", "dispatcher"))

	assert.Equal(t, "[]", rr.Body.String())
}

func TestUsersHandlerNeverLeaksHashes(t *testing.T) {
	db := &mocks.ProfileDatabase{}
	db.On("Find", mock.Anything).Return([]models.Profile{{ID: "p1", Email: "a@b.c", Role: "admin", PasswordHash: "$2a$secret"}}, nil)
	u := handlers.User{DB: db}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UsersHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/", nil), "p1", "admin"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret")
}

func TestMeHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.MeHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/", nil), "d1", "dispatcher"))

	var got struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
		Navigation []struct {
			Title string `json:"title"`
		} `json:"navigation"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "d1", got.User.ID)
	assert.Equal(t, "dispatcher", got.User.Role)

	titles := make([]string, 0, len(got.Navigation))
	for _, item := range got.Navigation {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{
		"Dashboard", "Active Emergencies", "Medical IDs", "Ambulances",
		"Alert Logs", "Communication", "Live Map", "Settings",
	}, titles)
}

func TestDashboardHandler(t *testing.T) {
	adb := &mocks.AccidentDatabase{}
	bdb := &mocks.AmbulanceDatabase{}
	mdb := &mocks.MedicalIDDatabase{}
	pdb := &mocks.ProfileDatabase{}
	ldb := &mocks.AlertLogDatabase{}
	adb.On("Find", mock.Anything, mock.Anything).Return([]models.Accident{{ID: "a1", Status: models.StatusActive}}, nil)
	bdb.On("Find", mock.Anything, mock.Anything).Return([]models.Ambulance{{ID: "b1"}, {ID: "b2"}}, nil)
	mdb.On("Count", mock.Anything).Return(int64(7), nil)
	ldb.On("Recent", mock.Anything, int64(dashboard.RecentAlertLimit)).Return(nil, nil)
	d := handlers.Dashboard{Loader: dashboard.Loader{Accidents: adb, Ambulances: bdb, MedicalIDs: mdb, Profiles: pdb, Alerts: ldb}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.DashboardHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/", nil), "d1", "dispatcher"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.DashboardStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 1, got.ActiveEmergencies)
	assert.Equal(t, 2, got.AvailableAmbulances)
	assert.Equal(t, int64(7), got.TotalMedicalIDs)
	assert.False(t, got.ShowUserCount)
	pdb.AssertNotCalled(t, "Count", mock.Anything)
}

func TestMetricsHandler(t *testing.T) {
	mc := api.NewMetricsCollector(10)
	defer mc.Stop()
	b := feed.NewBroker()
	sub := b.Subscribe("page", "accidents", feed.OpAll, func(feed.Change) {})
	defer sub.Unsubscribe()
	m := handlers.Metrics{Collector: mc, Broker: b}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.MetricsHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/", nil), "x", "admin"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"feedSubscribers":1`)
}
