package databases

// go generate: mockery --name ProfileDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lifeline-api/models"
)

const profileName = "profiles"

// ProfileDatabase contains the methods to use with the profiles collection
type ProfileDatabase interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	Find(ctx context.Context) ([]models.Profile, error)
	Count(ctx context.Context) (int64, error)
}

type profileDatabase struct {
	db DatabaseHelper
}

// NewProfileDatabase initializes a new instance of profile database with the provided db connection
func NewProfileDatabase(db DatabaseHelper) ProfileDatabase {
	return &profileDatabase{
		db: db,
	}
}

func (p *profileDatabase) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	profile := &models.Profile{}
	err := p.db.Collection(profileName).FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if err != nil {
		return nil, notFound(err)
	}
	return profile, nil
}

func (p *profileDatabase) Find(ctx context.Context) ([]models.Profile, error) {
	cursor, err := p.db.Collection(profileName).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var profiles []models.Profile
	if err = cursor.Decode(&profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (p *profileDatabase) Count(ctx context.Context) (int64, error) {
	return p.db.Collection(profileName).CountDocuments(ctx, bson.M{})
}
