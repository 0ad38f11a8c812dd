package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/models"
)

// report stores a new emergency and records the emergency call alert for
// it. A failed alert write is logged and does not fail the report.
func (a Accident) report(ctx context.Context, accident *models.Accident) error {
	if err := a.DB.Insert(ctx, accident); err != nil {
		return err
	}
	a.Publish.publish(databases.AccidentCollection, feed.OpInsert, accident.ID, accident)

	alert := &models.AlertLog{
		Type:       models.AlertEmergencyCall,
		Message:    fmt.Sprintf("New %s priority %s reported at %s", accident.Priority, accident.Type, accident.Location),
		AccidentID: accident.ID,
	}
	if err := a.LDB.Insert(ctx, alert); err != nil {
		zap.S().With(err).Errorw("failed to record emergency call alert", "accident_id", accident.ID)
		return nil
	}
	a.Publish.publish(databases.AlertLogCollection, feed.OpInsert, alert.ID, alert)
	return nil
}

// transition moves accident to status to. The state machine is checked
// before anything is written and the store rejects the write when the
// status changed in the meantime.
func (a Accident) transition(ctx context.Context, accident *models.Accident, to models.AccidentStatus) error {
	if err := models.CheckTransition(accident.Status, to); err != nil {
		return err
	}
	if err := a.DB.UpdateStatus(ctx, accident.ID, accident.Status, to); err != nil {
		return err
	}
	accident.Status = to
	a.Publish.publish(databases.AccidentCollection, feed.OpUpdate, accident.ID, accident)
	return nil
}

// assign dispatches the ambulance and records it on the accident. Only an
// available ambulance can be dispatched, and it is put back to available
// when the accident write fails.
func (a Accident) assign(ctx context.Context, accident *models.Accident, ambulanceID string) error {
	if accident.Status == models.StatusResolved {
		return models.ErrInvalidTransition
	}
	if err := a.ADB.Dispatch(ctx, ambulanceID); err != nil {
		return err
	}
	if err := a.DB.AssignAmbulance(ctx, accident.ID, ambulanceID); err != nil {
		if rerr := a.ADB.UpdateStatus(context.WithoutCancel(ctx), ambulanceID, models.AmbulanceAvailable); rerr != nil {
			zap.S().With(rerr).Errorw("failed to release ambulance", "ambulance_id", ambulanceID, "accident_id", accident.ID)
		}
		return err
	}
	accident.AssignedAmbulanceID = ambulanceID
	a.Publish.publish(databases.AmbulanceCollection, feed.OpUpdate, ambulanceID, nil)
	a.Publish.publish(databases.AccidentCollection, feed.OpUpdate, accident.ID, accident)
	return nil
}

func (m MedicalID) create(ctx context.Context, medicalID *models.MedicalID) error {
	if err := m.DB.Insert(ctx, medicalID); err != nil {
		return err
	}
	m.Publish.publish(databases.MedicalIDCollection, feed.OpInsert, medicalID.ID, medicalID)
	return nil
}

func (m MedicalID) remove(ctx context.Context, id string) error {
	if err := m.DB.Delete(ctx, id); err != nil {
		return err
	}
	m.Publish.publish(databases.MedicalIDCollection, feed.OpDelete, id, nil)
	return nil
}

func (a Ambulance) create(ctx context.Context, ambulance *models.Ambulance) error {
	if err := a.DB.Insert(ctx, ambulance); err != nil {
		return err
	}
	a.Publish.publish(databases.AmbulanceCollection, feed.OpInsert, ambulance.ID, ambulance)
	return nil
}

func (a Ambulance) setStatus(ctx context.Context, id string, status models.AmbulanceStatus) error {
	if err := models.CheckAmbulanceStatus(status); err != nil {
		return err
	}
	if err := a.DB.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	a.Publish.publish(databases.AmbulanceCollection, feed.OpUpdate, id, nil)
	return nil
}
