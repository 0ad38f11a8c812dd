package databases

// go generate: mockery --name AlertLogDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lifeline-api/models"
)

const alertLogName = "alert_logs"

// AlertLogDatabase contains the methods to use with the alert_logs collection
type AlertLogDatabase interface {
	Recent(ctx context.Context, limit int64) ([]models.AlertLog, error)
	Insert(ctx context.Context, alert *models.AlertLog) error
	ExistsForAccident(ctx context.Context, accidentID string, alertType models.AlertType) (bool, error)
}

type alertLogDatabase struct {
	db DatabaseHelper
}

// NewAlertLogDatabase initializes a new instance of alert log database with the provided db connection
func NewAlertLogDatabase(db DatabaseHelper) AlertLogDatabase {
	return &alertLogDatabase{
		db: db,
	}
}

// Recent returns the newest alerts joined with the accident they refer to
func (a *alertLogDatabase) Recent(ctx context.Context, limit int64) ([]models.AlertLog, error) {
	pipeline := []bson.M{
		{"$sort": bson.M{"created_at": -1}},
		{"$limit": limit},
		{"$lookup": bson.M{
			"from":         accidentName,
			"localField":   "accident_id",
			"foreignField": "_id",
			"as":           "accident",
		}},
		{"$unwind": bson.M{
			"path":                       "$accident",
			"preserveNullAndEmptyArrays": true,
		}},
	}
	cursor, err := a.db.Collection(alertLogName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var alerts []models.AlertLog
	if err = cursor.Decode(&alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (a *alertLogDatabase) Insert(ctx context.Context, alert *models.AlertLog) error {
	alert.ID = uuid.New().String()
	alert.CreatedAt = time.Now().UTC()
	alert.Accident = nil
	_, err := a.db.Collection(alertLogName).InsertOne(ctx, alert)
	return err
}

func (a *alertLogDatabase) ExistsForAccident(ctx context.Context, accidentID string, alertType models.AlertType) (bool, error) {
	n, err := a.db.Collection(alertLogName).CountDocuments(ctx, bson.M{"accident_id": accidentID, "type": alertType})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
