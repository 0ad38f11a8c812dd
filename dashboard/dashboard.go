// Package dashboard builds the dashboard aggregate. It is recomputed from
// the store on every request and never cached.
package dashboard

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/models"
	"github.com/linesmerrill/lifeline-api/policy"
)

// RecentAlertLimit is how many alerts the dashboard shows.
const RecentAlertLimit = 5

// Inputs are the raw collections the dashboard is projected from
type Inputs struct {
	ActiveAccidents     []models.Accident
	AvailableAmbulances []models.Ambulance
	MedicalIDCount      int64
	UserCount           int64
	RecentAlerts        []models.AlertLog
}

// Build projects in into the stats a principal with role may see.
func Build(in Inputs, role policy.Role) models.DashboardStats {
	stats := models.DashboardStats{
		ActiveEmergencies:   len(in.ActiveAccidents),
		AvailableAmbulances: len(in.AvailableAmbulances),
		TotalMedicalIDs:     in.MedicalIDCount,
		ActiveAccidents:     nonNil(in.ActiveAccidents),
		RecentAlerts:        nonNil(in.RecentAlerts),
	}
	if len(stats.RecentAlerts) > RecentAlertLimit {
		stats.RecentAlerts = stats.RecentAlerts[:RecentAlertLimit]
	}
	if policy.CanViewUserCount(role) {
		stats.ShowUserCount = true
		stats.TotalUsers = in.UserCount
	}
	return stats
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Loader fetches the dashboard inputs from the store
type Loader struct {
	Accidents  databases.AccidentDatabase
	Ambulances databases.AmbulanceDatabase
	MedicalIDs databases.MedicalIDDatabase
	Profiles   databases.ProfileDatabase
	Alerts     databases.AlertLogDatabase
}

// Load runs the dashboard queries concurrently. A failed query is logged
// and leaves its part of the dashboard empty; the profile count is only
// queried for principals allowed to see it.
func (l Loader) Load(ctx context.Context, p policy.Principal) models.DashboardStats {
	var (
		in Inputs
		wg sync.WaitGroup
	)

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				zap.S().With(err).Errorw("failed to load dashboard data", "part", name, "user_id", p.ID)
			}
		}()
	}

	run("active_accidents", func() (err error) {
		in.ActiveAccidents, err = l.Accidents.Find(ctx, bson.M{"status": models.StatusActive})
		return err
	})
	run("available_ambulances", func() (err error) {
		in.AvailableAmbulances, err = l.Ambulances.Find(ctx, bson.M{"status": models.AmbulanceAvailable})
		return err
	})
	run("medical_ids", func() (err error) {
		in.MedicalIDCount, err = l.MedicalIDs.Count(ctx)
		return err
	})
	run("recent_alerts", func() (err error) {
		in.RecentAlerts, err = l.Alerts.Recent(ctx, RecentAlertLimit)
		return err
	})
	if policy.CanViewUserCount(p.Role) {
		run("users", func() (err error) {
			in.UserCount, err = l.Profiles.Count(ctx)
			return err
		})
	}
	wg.Wait()

	return Build(in, p.Role)
}
