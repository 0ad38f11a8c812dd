package feed

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/databases"
)

type streamEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.Raw            `bson:"fullDocument"`
	ClusterTime  primitive.Timestamp `bson:"clusterTime"`
}

// Watch tails the change stream of coll and publishes every insert, update
// and delete as a change on table. A failed or closed stream is reopened
// after the retry delay, and subscribers get a resync since changes may have
// been missed in between. Watch returns when ctx is done.
func (b *Broker) Watch(ctx context.Context, table string, coll databases.CollectionHelper) {
	for {
		err := b.stream(ctx, table, coll)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			zap.S().With(err).Warnw("change stream stopped", "table", table, "retry_in", b.retryDelay)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(b.retryDelay):
		}
		b.Publish(Change{Table: table, Op: OpAll})
	}
}

func (b *Broker) stream(ctx context.Context, table string, coll databases.CollectionHelper) error {
	cs, err := coll.Watch(ctx, mongo.Pipeline{}, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return err
	}
	defer cs.Close(context.Background())

	zap.S().Infow("watching change stream", "table", table)
	for cs.Next(ctx) {
		var ev streamEvent
		if err := cs.Decode(&ev); err != nil {
			zap.S().With(err).Warnw("failed to decode change event", "table", table)
			continue
		}
		op, ok := opFor(ev.OperationType)
		if !ok {
			continue
		}
		at := time.Now().UTC()
		if ev.ClusterTime.T != 0 {
			at = time.Unix(int64(ev.ClusterTime.T), 0).UTC()
		}
		b.Publish(Change{
			Table:    table,
			Op:       op,
			ID:       ev.DocumentKey.ID,
			Document: ev.FullDocument,
			At:       at,
		})
	}
	return cs.Err()
}

func opFor(operationType string) (Op, bool) {
	switch operationType {
	case "insert":
		return OpInsert, true
	case "update", "replace":
		return OpUpdate, true
	case "delete":
		return OpDelete, true
	}
	return "", false
}
