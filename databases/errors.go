package databases

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches the id.
	ErrNotFound = errors.New("record not found")
	// ErrStale is returned when a conditional update no longer matches
	// because the record changed underneath the caller.
	ErrStale = errors.New("record changed since it was read")
)

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
