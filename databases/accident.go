package databases

// go generate: mockery --name AccidentDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lifeline-api/models"
)

const accidentName = "accidents"

// AccidentDatabase contains the methods to use with the accidents collection
type AccidentDatabase interface {
	Find(ctx context.Context, filter interface{}) ([]models.Accident, error)
	FindByID(ctx context.Context, id string) (*models.Accident, error)
	Insert(ctx context.Context, accident *models.Accident) error
	UpdateStatus(ctx context.Context, id string, from, to models.AccidentStatus) error
	AssignAmbulance(ctx context.Context, id, ambulanceID string) error
}

type accidentDatabase struct {
	db DatabaseHelper
}

// NewAccidentDatabase initializes a new instance of accident database with the provided db connection
func NewAccidentDatabase(db DatabaseHelper) AccidentDatabase {
	return &accidentDatabase{
		db: db,
	}
}

// Find returns the matching accidents, newest first
func (a *accidentDatabase) Find(ctx context.Context, filter interface{}) ([]models.Accident, error) {
	cursor, err := a.db.Collection(accidentName).Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	var accidents []models.Accident
	if err = cursor.Decode(&accidents); err != nil {
		return nil, err
	}
	return accidents, nil
}

func (a *accidentDatabase) FindByID(ctx context.Context, id string) (*models.Accident, error) {
	accident := &models.Accident{}
	err := a.db.Collection(accidentName).FindOne(ctx, byID(id)).Decode(&accident)
	if err != nil {
		return nil, notFound(err)
	}
	return accident, nil
}

// Insert stores a new accident, assigning its id and timestamps
func (a *accidentDatabase) Insert(ctx context.Context, accident *models.Accident) error {
	now := time.Now().UTC()
	accident.ID = uuid.New().String()
	accident.CreatedAt = now
	accident.UpdatedAt = now
	_, err := a.db.Collection(accidentName).InsertOne(ctx, accident)
	return err
}

// UpdateStatus moves an accident from one status to the next. The update
// only matches while the stored status is still from, so two dispatchers
// racing on the same record cannot skip or repeat a step.
func (a *accidentDatabase) UpdateStatus(ctx context.Context, id string, from, to models.AccidentStatus) error {
	res, err := a.db.Collection(accidentName).UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStale
	}
	return nil
}

func (a *accidentDatabase) AssignAmbulance(ctx context.Context, id, ambulanceID string) error {
	res, err := a.db.Collection(accidentName).UpdateOne(ctx,
		byID(id),
		bson.M{"$set": bson.M{"assigned_ambulance_id": ambulanceID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
