package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/filter"
	"github.com/linesmerrill/lifeline-api/models"
	"github.com/linesmerrill/lifeline-api/policy"
)

// ErrConfirmationRequired is returned for a delete sent without confirm=true
var ErrConfirmationRequired = errors.New("confirmation required")

// MedicalID exported for testing purposes
type MedicalID struct {
	DB      databases.MedicalIDDatabase
	Publish Publisher
	Now     func() time.Time
}

func (m MedicalID) today() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// MedicalIDsHandler returns all medical IDs matching the search query parameter
func (m MedicalID) MedicalIDsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("Failed to fetch medical ID data", http.StatusInternalServerError, w, err)
		return
	}
	medicalIDs := filter.MedicalIDs(dbResp, filter.FromQuery(r.URL.Query()))
	writeJSON(w, http.StatusOK, medicalIDViews(medicalIDs, principal(r), m.today()))
}

// CreateMedicalIDHandler creates a medical ID owned by the caller
func (m MedicalID) CreateMedicalIDHandler(w http.ResponseWriter, r *http.Request) {
	var draft models.MedicalIDDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := draft.Validate(); err != nil {
		config.ErrorStatus("Please fill in all required fields", statusFor(err), w, err)
		return
	}

	p := principal(r)
	medicalID := draft.MedicalID(p.ID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := m.create(ctx, &medicalID); err != nil {
		config.ErrorStatus("Failed to create medical ID", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, medicalIDView(medicalID, p, m.today()))
}

// DeleteMedicalIDHandler deletes a medical ID. Only its creator or an admin
// may delete it, and the request must carry confirm=true.
func (m MedicalID) DeleteMedicalIDHandler(w http.ResponseWriter, r *http.Request) {
	medicalID := mux.Vars(r)["medical_id"]

	if r.URL.Query().Get("confirm") != "true" {
		config.ErrorStatus("delete not confirmed", http.StatusPreconditionRequired, w, ErrConfirmationRequired)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.FindByID(ctx, medicalID)
	if err != nil {
		config.ErrorStatus("failed to get medical ID by ID", statusFor(err), w, err)
		return
	}

	p := principal(r)
	if !policy.CanDeleteMedicalID(p, dbResp.CreatedBy) {
		zap.S().Warnw("medical ID delete denied", "medical_id", medicalID, "user_id", p.ID, "role", p.Role)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "forbidden"}`))
		return
	}

	if err = m.remove(ctx, medicalID); err != nil {
		config.ErrorStatus("Failed to delete medical ID", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Medical ID deleted successfully"})
}
