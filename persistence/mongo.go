package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fib-lab/gridsim/internal/config"
)

// MongoSink persists one document per snapshot to a collection, grounded on
// the teacher's connect-then-collection pattern for loading map/person data
// from Mongo (utils/input/input.go) — here used for writing instead of
// reading.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSink connects to cfg.MongoURI and targets cfg.Database's
// "snapshots" collection.
func NewMongoSink(ctx context.Context, cfg config.SnapshotConfig) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoSink{client: client, coll: client.Database(cfg.Database).Collection("snapshots")}, nil
}

func (s *MongoSink) Write(ctx context.Context, snap Snapshot) error {
	_, err := s.coll.InsertOne(ctx, snap)
	return err
}

func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// NewSink builds the Sink configured by cfg: a MongoSink when enabled, a
// zero-cost NullSink otherwise.
func NewSink(ctx context.Context, cfg config.SnapshotConfig) (Sink, error) {
	if !cfg.Enabled {
		return NullSink{}, nil
	}
	return NewMongoSink(ctx, cfg)
}
