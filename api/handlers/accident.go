package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/filter"
	"github.com/linesmerrill/lifeline-api/models"
)

// Accident exported for testing purposes
type Accident struct {
	DB      databases.AccidentDatabase
	ADB     databases.AmbulanceDatabase
	LDB     databases.AlertLogDatabase
	Publish Publisher
}

// AccidentsHandler returns all emergencies matching the search, status and
// priority query parameters, newest first
func (a Accident) AccidentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := a.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("Failed to fetch emergency data", http.StatusInternalServerError, w, err)
		return
	}
	accidents := filter.Accidents(dbResp, filter.FromQuery(r.URL.Query()))
	writeJSON(w, http.StatusOK, accidentViews(accidents, principal(r)))
}

// CreateAccidentHandler reports a new emergency. The status is always active
// and the reporter is always the caller.
func (a Accident) CreateAccidentHandler(w http.ResponseWriter, r *http.Request) {
	draft := models.NewAccidentDraft()
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := draft.Validate(); err != nil {
		config.ErrorStatus("Please fill in all required fields", statusFor(err), w, err)
		return
	}

	p := principal(r)
	accident := draft.Accident(p.ID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.report(ctx, &accident); err != nil {
		config.ErrorStatus("Failed to submit emergency report", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("emergency reported", "accident_id", accident.ID, "priority", accident.Priority, "reporter_id", p.ID)
	writeJSON(w, http.StatusCreated, accidentView(accident, p))
}

type statusRequest struct {
	Status models.AccidentStatus `json:"status"`
}

// UpdateAccidentStatusHandler moves an emergency one step along
// active -> responded -> resolved
func (a Accident) UpdateAccidentStatusHandler(w http.ResponseWriter, r *http.Request) {
	accidentID := mux.Vars(r)["accident_id"]

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if !req.Status.Valid() {
		config.ErrorStatus("unknown status", http.StatusBadRequest, w, models.ErrInvalidValue)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	accident, err := a.DB.FindByID(ctx, accidentID)
	if err != nil {
		config.ErrorStatus("failed to get emergency by ID", statusFor(err), w, err)
		return
	}
	if err = a.transition(ctx, accident, req.Status); err != nil {
		config.ErrorStatus("Failed to update emergency status", statusFor(err), w, err)
		return
	}
	zap.S().Infow(fmt.Sprintf("Emergency status updated to %s", req.Status), "accident_id", accidentID, "user_id", principal(r).ID)
	writeJSON(w, http.StatusOK, accidentView(*accident, principal(r)))
}

type assignRequest struct {
	AmbulanceID string `json:"ambulance_id"`
}

// AssignAmbulanceHandler assigns an ambulance to an emergency and marks the
// ambulance dispatched
func (a Accident) AssignAmbulanceHandler(w http.ResponseWriter, r *http.Request) {
	accidentID := mux.Vars(r)["accident_id"]

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(req.AmbulanceID) == "" {
		config.ErrorStatus("Please fill in all required fields", http.StatusBadRequest, w, models.ErrMissingFields)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	accident, err := a.DB.FindByID(ctx, accidentID)
	if err != nil {
		config.ErrorStatus("failed to get emergency by ID", statusFor(err), w, err)
		return
	}
	if err = a.assign(ctx, accident, req.AmbulanceID); err != nil {
		config.ErrorStatus("failed to assign ambulance", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, accidentView(*accident, principal(r)))
}
