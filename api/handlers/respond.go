package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/config"
	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/models"
	"github.com/linesmerrill/lifeline-api/policy"
)

// Publisher announces a write on the change feed
type Publisher func(feed.Change)

func (p Publisher) publish(table string, op feed.Op, id string, doc interface{}) {
	if p != nil {
		p(feed.NewChange(table, op, id, doc))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}

func principal(r *http.Request) policy.Principal {
	p, ok := api.PrincipalFrom(r.Context())
	if !ok {
		return policy.NewPrincipal("", "", "")
	}
	return p
}

// statusFor maps store and validation errors to a response code
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingFields), errors.Is(err, models.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, databases.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, databases.ErrStale):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
