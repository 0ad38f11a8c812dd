package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/policy"
)

var secret = "test-secret"

func newTestApp() *App {
	a := &App{
		Config: config.Config{JWTSecret: secret, TokenTTL: time.Hour, RequestTimeout: 5 * time.Second},
		Broker: feed.NewBroker(),
	}
	a.Router = a.New()
	return a
}

func executeRequest(a *App, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func bearer(t *testing.T, req *http.Request, role string) *http.Request {
	token, _, err := api.IssueToken([]byte(secret), policy.NewPrincipal("u-"+role, role+"@lifeline.test", role), time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(a, req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(a, req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestApp_AccidentsUnauthorized(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("GET", "/api/v1/accidents", nil)
	response := executeRequest(a, req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestApp_PageSessionUnauthorized(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("GET", "/ws/accidents", nil)
	response := executeRequest(a, req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestApp_NavigationForResponder(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("GET", "/api/v1/navigation", nil)
	response := executeRequest(a, bearer(t, req, "responder"))

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"title":"Medical IDs"`)
	assert.NotContains(t, response.Body.String(), `"title":"Ambulances"`)
	assert.NotContains(t, response.Body.String(), `"title":"Users"`)
}

func TestApp_UsersForbiddenForDispatcher(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("GET", "/api/v1/users", nil)
	response := executeRequest(a, bearer(t, req, "dispatcher"))

	checkResponseCode(t, http.StatusForbidden, response.Code)
}

func TestApp_StatusChangeForbiddenForResponder(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("PATCH", "/api/v1/accidents/a1/status", strings.NewReader(`{"status":"responded"}`))
	response := executeRequest(a, bearer(t, req, "responder"))

	checkResponseCode(t, http.StatusForbidden, response.Code)
}

func TestApp_UnknownRoleIsTreatedAsResponder(t *testing.T) {
	a := newTestApp()
	req, _ := http.NewRequest("GET", "/api/v1/ambulances", nil)
	response := executeRequest(a, bearer(t, req, "janitor"))

	checkResponseCode(t, http.StatusForbidden, response.Code)
}

func TestPublisherIsOffWithChangeStreams(t *testing.T) {
	a := &App{Broker: feed.NewBroker()}
	assert.NotNil(t, a.publisher())

	a.Config.ChangeStreams = true
	assert.Nil(t, a.publisher())
}
