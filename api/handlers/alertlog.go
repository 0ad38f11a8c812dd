package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/databases"
)

const (
	defaultAlertLimit = 50
	maxAlertLimit     = 200
)

// AlertLog exported for testing purposes
type AlertLog struct {
	DB databases.AlertLogDatabase
}

// AlertsHandler returns the newest alerts joined with their emergency
func (a AlertLog) AlertsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultAlertLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			zap.S().Warnf("invalid limit %q, using default of %v", raw, defaultAlertLimit)
		} else {
			limit = n
		}
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := a.DB.Recent(ctx, int64(limit))
	if err != nil {
		config.ErrorStatus("Failed to fetch alert logs", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(dbResp))
}
