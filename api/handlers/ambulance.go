package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/filter"
	"github.com/linesmerrill/lifeline-api/models"
)

// Ambulance exported for testing purposes
type Ambulance struct {
	DB      databases.AmbulanceDatabase
	Publish Publisher
}

// AmbulancesHandler returns the fleet matching the search and status query parameters
func (a Ambulance) AmbulancesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := a.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("Failed to fetch ambulance data", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(filter.Ambulances(dbResp, filter.FromQuery(r.URL.Query()))))
}

// CreateAmbulanceHandler adds an ambulance to the fleet
func (a Ambulance) CreateAmbulanceHandler(w http.ResponseWriter, r *http.Request) {
	var draft models.AmbulanceDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := draft.Validate(); err != nil {
		config.ErrorStatus("Please fill in all required fields", statusFor(err), w, err)
		return
	}

	ambulance := draft.Ambulance()

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.create(ctx, &ambulance); err != nil {
		config.ErrorStatus("Failed to create ambulance", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ambulance)
}

type ambulanceStatusRequest struct {
	Status models.AmbulanceStatus `json:"status"`
}

// UpdateAmbulanceStatusHandler sets an ambulance's availability
func (a Ambulance) UpdateAmbulanceStatusHandler(w http.ResponseWriter, r *http.Request) {
	ambulanceID := mux.Vars(r)["ambulance_id"]

	var req ambulanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.setStatus(ctx, ambulanceID, req.Status); err != nil {
		config.ErrorStatus("Failed to update ambulance status", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": ambulanceID, "status": req.Status})
}
