package models

// HealthCheckResponse is the body of GET /health
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
