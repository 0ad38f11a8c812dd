package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newestFirst sorts by created_at descending, the order every list page uses.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// Collection names. The change feed uses them as table names.
const (
	AccidentCollection  = accidentName
	MedicalIDCollection = medicalIDName
	AmbulanceCollection = ambulanceName
	AlertLogCollection  = alertLogName
	ProfileCollection   = profileName
)
