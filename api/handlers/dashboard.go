package handlers

import (
	"net/http"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/dashboard"
)

// Dashboard exported for testing purposes
type Dashboard struct {
	Loader dashboard.Loader
}

// DashboardHandler returns the dashboard aggregate for the caller. Parts
// that fail to load are left empty rather than failing the request.
func (d Dashboard) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	writeJSON(w, http.StatusOK, d.Loader.Load(ctx, principal(r)))
}
