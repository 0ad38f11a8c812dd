package models

// DashboardStats is the derived dashboard aggregate. It is never persisted.
type DashboardStats struct {
	ActiveEmergencies   int        `json:"activeEmergencies"`
	AvailableAmbulances int        `json:"availableAmbulances"`
	TotalMedicalIDs     int64      `json:"totalMedicalIds"`
	TotalUsers          int64      `json:"totalUsers"`
	ShowUserCount       bool       `json:"showUserCount"`
	RecentAlerts        []AlertLog `json:"recentAlerts"`
	ActiveAccidents     []Accident `json:"activeAccidents"`
}
