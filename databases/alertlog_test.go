package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/databases/mocks"
	"github.com/linesmerrill/lifeline-api/models"
)

func TestAlertLogDatabase_Recent(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.AlertLog)
		*arg = []models.AlertLog{{
			ID:         "al-1",
			Type:       models.AlertEmergencyCall,
			AccidentID: "acc-1",
			Accident:   &models.Accident{ID: "acc-1", Location: "5th & Main"},
		}}
	})
	collectionHelper.On("Aggregate", context.Background(), mock.MatchedBy(func(p []bson.M) bool {
		return len(p) == 4 && p[1]["$limit"] == int64(5)
	})).Return(cursorHelper, nil)
	dbHelper.On("Collection", "alert_logs").Return(collectionHelper)

	alerts, err := databases.NewAlertLogDatabase(dbHelper).Recent(context.Background(), 5)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, "5th & Main", alerts[0].Accident.Location)
}

func TestAlertLogDatabase_ExistsForAccident(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", context.Background(),
		bson.M{"accident_id": "acc-1", "type": models.AlertSystem}).Return(int64(1), nil)
	collectionHelper.On("CountDocuments", context.Background(),
		bson.M{"accident_id": "acc-2", "type": models.AlertSystem}).Return(int64(0), nil)
	dbHelper.On("Collection", "alert_logs").Return(collectionHelper)

	alertDB := databases.NewAlertLogDatabase(dbHelper)

	ok, err := alertDB.ExistsForAccident(context.Background(), "acc-1", models.AlertSystem)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = alertDB.ExistsForAccident(context.Background(), "acc-2", models.AlertSystem)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAlertLogDatabase_InsertDropsJoinedAccident(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	collectionHelper.On("InsertOne", context.Background(), mock.AnythingOfType("*models.AlertLog")).Return(insertResult, nil)
	dbHelper.On("Collection", "alert_logs").Return(collectionHelper)

	alert := &models.AlertLog{Type: models.AlertEmergencyCall, AccidentID: "acc-1", Accident: &models.Accident{ID: "acc-1"}}
	assert.NoError(t, databases.NewAlertLogDatabase(dbHelper).Insert(context.Background(), alert))
	assert.Nil(t, alert.Accident)
	assert.NotEmpty(t, alert.ID)
}
