package handlers

import (
	"net/http"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/policy"
)

// User exported for testing purposes
type User struct {
	DB databases.ProfileDatabase
}

// UsersHandler returns every profile. Password hashes are never serialized.
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := u.DB.Find(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch users", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(dbResp))
}

type meResponse struct {
	User       policy.Principal `json:"user"`
	Navigation []policy.Item    `json:"navigation"`
}

// MeHandler returns the caller and the navigation they may see
func MeHandler(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	writeJSON(w, http.StatusOK, meResponse{
		User:       p,
		Navigation: policy.VisibleItems(p.Role, policy.Navigation()),
	})
}

// NavigationHandler returns the navigation items visible to the caller, in
// menu order
func NavigationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(policy.VisibleItems(principal(r).Role, policy.Navigation())))
}
