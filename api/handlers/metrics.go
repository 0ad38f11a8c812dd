package handlers

import (
	"net/http"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/feed"
)

// Metrics exported for testing purposes
type Metrics struct {
	Collector *api.MetricsCollector
	Broker    *feed.Broker
}

type metricsResponse struct {
	api.Summary
	FeedSubscribers int `json:"feedSubscribers"`
}

// MetricsHandler returns request metrics and the number of live page sessions
func (m Metrics) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	resp := metricsResponse{Summary: m.Collector.Summary()}
	if m.Broker != nil {
		resp.FeedSubscribers = m.Broker.Subscribers()
	}
	writeJSON(w, http.StatusOK, resp)
}
