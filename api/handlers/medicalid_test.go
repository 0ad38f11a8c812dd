package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/lifeline-api/api/handlers"
	"github.com/linesmerrill/lifeline-api/databases/mocks"
	"github.com/linesmerrill/lifeline-api/models"
)

var today = func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC) }

func medicalID() *models.MedicalID {
	return &models.MedicalID{ID: "m1", FullName: "Ada Lovelace", DateOfBirth: "1990-03-11", BloodType: "O-", CreatedBy: "owner"}
}

func deleteRequest(id, query, userID, role string) *http.Request {
	req := httptest.NewRequest("DELETE", "/api/v1/medical-ids/"+id+query, nil)
	return as(mux.SetURLVars(req, map[string]string{"medical_id": id}), userID, role)
}

func TestMedicalIDsHandler(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	db.On("Find", mock.Anything, mock.Anything).Return([]models.MedicalID{*medicalID()}, nil)
	m := handlers.MedicalID{DB: db, Now: today}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.MedicalIDsHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/api/v1/medical-ids?search=ada", nil), "owner", "responder"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []handlers.MedicalIDView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Age)
	assert.Equal(t, 33, *got[0].Age)
	assert.Equal(t, models.Tone("yellow-light"), got[0].BloodTypeTone)
	assert.True(t, got[0].CanDelete)
}

func TestMedicalIDsHandlerEmptyIsArray(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	db.On("Find", mock.Anything, mock.Anything).Return(nil, nil)
	m := handlers.MedicalID{DB: db}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.MedicalIDsHandler).ServeHTTP(rr, as(httptest.NewRequest("GET", "/", nil), "u", "responder"))

	assert.Equal(t, "[]", rr.Body.String())
}

func TestCreateMedicalIDHandler(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	var inserted *models.MedicalID
	db.On("Insert", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*models.MedicalID)
	})
	p := &published{}
	m := handlers.MedicalID{DB: db, Publish: p.publish, Now: today}

	body := `{"full_name":"Ada Lovelace","date_of_birth":"1990-03-11","blood_type":"O-","allergies":""}`
	rr := httptest.NewRecorder()
	http.HandlerFunc(m.CreateMedicalIDHandler).ServeHTTP(rr, as(httptest.NewRequest("POST", "/", strings.NewReader(body)), "r1", "responder"))

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, inserted)
	assert.Equal(t, "r1", inserted.CreatedBy)
	assert.Nil(t, inserted.Allergies)
	assert.Equal(t, []string{"medical_ids:INSERT"}, p.tables())
}

func TestCreateMedicalIDHandlerMissingFields(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	m := handlers.MedicalID{DB: db}

	body := `{"full_name":"Ada Lovelace"}`
	rr := httptest.NewRecorder()
	http.HandlerFunc(m.CreateMedicalIDHandler).ServeHTTP(rr, as(httptest.NewRequest("POST", "/", strings.NewReader(body)), "r1", "responder"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestDeleteMedicalIDHandlerNeedsConfirmation(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	m := handlers.MedicalID{DB: db}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.DeleteMedicalIDHandler).ServeHTTP(rr, deleteRequest("m1", "", "owner", "responder"))

	assert.Equal(t, http.StatusPreconditionRequired, rr.Code)
	assert.Contains(t, rr.Body.String(), handlers.ErrConfirmationRequired.Error())
	db.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteMedicalIDHandlerOnlyOwnerOrAdmin(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	db.On("FindByID", mock.Anything, "m1").Return(medicalID(), nil)
	m := handlers.MedicalID{DB: db}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.DeleteMedicalIDHandler).ServeHTTP(rr, deleteRequest("m1", "?confirm=true", "someone-else", "dispatcher"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	db.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteMedicalIDHandlerAdmin(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	db.On("FindByID", mock.Anything, "m1").Return(medicalID(), nil)
	db.On("Delete", mock.Anything, "m1").Return(nil)
	p := &published{}
	m := handlers.MedicalID{DB: db, Publish: p.publish}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.DeleteMedicalIDHandler).ServeHTTP(rr, deleteRequest("m1", "?confirm=true", "admin-1", "admin"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"message":"Medical ID deleted successfully"}`, rr.Body.String())
	assert.Equal(t, []string{"medical_ids:DELETE"}, p.tables())
}

func TestDeleteMedicalIDHandlerStoreError(t *testing.T) {
	db := &mocks.MedicalIDDatabase{}
	db.On("FindByID", mock.Anything, "m1").Return(medicalID(), nil)
	db.On("Delete", mock.Anything, "m1").Return(errors.New("mocked-error"))
	m := handlers.MedicalID{DB: db}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.DeleteMedicalIDHandler).ServeHTTP(rr, deleteRequest("m1", "?confirm=true", "owner", "responder"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `{"response": "Failed to delete medical ID, mocked-error"}`, rr.Body.String())
}
