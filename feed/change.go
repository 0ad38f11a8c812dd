package feed

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Op is the class of a committed change
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
	// OpAll subscribes to every operation class.
	OpAll Op = "*"
)

// ErrNoDocument is returned by Change.Decode when the change carries no
// document, as is the case for deletes and resyncs.
var ErrNoDocument = errors.New("change carries no document")

// Change is a single committed change on a table
type Change struct {
	Table    string    `json:"table"`
	Op       Op        `json:"op"`
	ID       string    `json:"id,omitempty"`
	Document bson.Raw  `json:"-"`
	At       time.Time `json:"at"`
}

// Resync reports whether the change stands in for one or more changes the
// subscriber missed. The only correct reaction is a full reload.
func (c Change) Resync() bool {
	return c.ID == ""
}

// Decode unmarshals the changed document into v
func (c Change) Decode(v interface{}) error {
	if len(c.Document) == 0 {
		return ErrNoDocument
	}
	return bson.Unmarshal(c.Document, v)
}

// NewChange builds a change for a document the caller just wrote.
func NewChange(table string, op Op, id string, doc interface{}) Change {
	c := Change{Table: table, Op: op, ID: id, At: time.Now().UTC()}
	if doc != nil {
		raw, err := bson.Marshal(doc)
		if err == nil {
			c.Document = raw
		}
	}
	return c
}
