package databases

// go generate: mockery --name AmbulanceDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lifeline-api/models"
)

const ambulanceName = "ambulances"

// AmbulanceDatabase contains the methods to use with the ambulances collection
type AmbulanceDatabase interface {
	Find(ctx context.Context, filter interface{}) ([]models.Ambulance, error)
	Insert(ctx context.Context, ambulance *models.Ambulance) error
	UpdateStatus(ctx context.Context, id string, status models.AmbulanceStatus) error
	Dispatch(ctx context.Context, id string) error
	Count(ctx context.Context, filter interface{}) (int64, error)
}

type ambulanceDatabase struct {
	db DatabaseHelper
}

// NewAmbulanceDatabase initializes a new instance of ambulance database with the provided db connection
func NewAmbulanceDatabase(db DatabaseHelper) AmbulanceDatabase {
	return &ambulanceDatabase{
		db: db,
	}
}

func (a *ambulanceDatabase) Find(ctx context.Context, filter interface{}) ([]models.Ambulance, error) {
	cursor, err := a.db.Collection(ambulanceName).Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	var ambulances []models.Ambulance
	if err = cursor.Decode(&ambulances); err != nil {
		return nil, err
	}
	return ambulances, nil
}

func (a *ambulanceDatabase) Insert(ctx context.Context, ambulance *models.Ambulance) error {
	now := time.Now().UTC()
	ambulance.ID = uuid.New().String()
	ambulance.CreatedAt = now
	ambulance.UpdatedAt = now
	_, err := a.db.Collection(ambulanceName).InsertOne(ctx, ambulance)
	return err
}

func (a *ambulanceDatabase) UpdateStatus(ctx context.Context, id string, status models.AmbulanceStatus) error {
	res, err := a.db.Collection(ambulanceName).UpdateOne(ctx,
		byID(id),
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Dispatch marks an available ambulance dispatched. An ambulance that is
// already dispatched or in maintenance does not match and ErrStale is
// returned.
func (a *ambulanceDatabase) Dispatch(ctx context.Context, id string) error {
	res, err := a.db.Collection(ambulanceName).UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AmbulanceAvailable},
		bson.M{"$set": bson.M{"status": models.AmbulanceDispatched, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

func (a *ambulanceDatabase) Count(ctx context.Context, filter interface{}) (int64, error) {
	return a.db.Collection(ambulanceName).CountDocuments(ctx, filter)
}
