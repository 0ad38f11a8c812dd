package databases

// go generate: mockery --name MedicalIDDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lifeline-api/models"
)

const medicalIDName = "medical_ids"

// MedicalIDDatabase contains the methods to use with the medical_ids collection
type MedicalIDDatabase interface {
	Find(ctx context.Context, filter interface{}) ([]models.MedicalID, error)
	FindByID(ctx context.Context, id string) (*models.MedicalID, error)
	Insert(ctx context.Context, medicalID *models.MedicalID) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type medicalIDDatabase struct {
	db DatabaseHelper
}

// NewMedicalIDDatabase initializes a new instance of medical id database with the provided db connection
func NewMedicalIDDatabase(db DatabaseHelper) MedicalIDDatabase {
	return &medicalIDDatabase{
		db: db,
	}
}

func (m *medicalIDDatabase) Find(ctx context.Context, filter interface{}) ([]models.MedicalID, error) {
	cursor, err := m.db.Collection(medicalIDName).Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	var medicalIDs []models.MedicalID
	if err = cursor.Decode(&medicalIDs); err != nil {
		return nil, err
	}
	return medicalIDs, nil
}

func (m *medicalIDDatabase) FindByID(ctx context.Context, id string) (*models.MedicalID, error) {
	medicalID := &models.MedicalID{}
	err := m.db.Collection(medicalIDName).FindOne(ctx, byID(id)).Decode(&medicalID)
	if err != nil {
		return nil, notFound(err)
	}
	return medicalID, nil
}

func (m *medicalIDDatabase) Insert(ctx context.Context, medicalID *models.MedicalID) error {
	now := time.Now().UTC()
	medicalID.ID = uuid.New().String()
	medicalID.CreatedAt = now
	medicalID.UpdatedAt = now
	_, err := m.db.Collection(medicalIDName).InsertOne(ctx, medicalID)
	return err
}

func (m *medicalIDDatabase) Delete(ctx context.Context, id string) error {
	res, err := m.db.Collection(medicalIDName).DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *medicalIDDatabase) Count(ctx context.Context) (int64, error) {
	return m.db.Collection(medicalIDName).CountDocuments(ctx, bson.M{})
}
