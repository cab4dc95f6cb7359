// Package persistence provides optional per-tick world-state snapshots, the
// same kind of durable-state-for-later-analysis job the teacher's entity
// managers perform by persisting to Mongo collections (utils/input/input.go).
// A simulation run works fine without it; NullSink is the zero-cost default.
package persistence

import "context"

// Snapshot is one tick's persisted summary of world state. It deliberately
// stays small (counts, not full lane contents) since a snapshot sink is for
// after-the-fact auditing/playback of run shape, not state reconstruction.
type Snapshot struct {
	Tick          int `bson:"tick"`
	ActiveCars    int `bson:"active_cars"`
	PendingCars   int `bson:"pending_cars"`
	WaitingCars   int `bson:"waiting_cars"`
	CompletedCars int `bson:"completed_cars"`
}

// Sink receives snapshots as a run progresses.
type Sink interface {
	Write(ctx context.Context, snap Snapshot) error
	Close(ctx context.Context) error
}

// NullSink discards every snapshot. It is the default when
// config.SnapshotConfig.Enabled is false.
type NullSink struct{}

func (NullSink) Write(context.Context, Snapshot) error { return nil }
func (NullSink) Close(context.Context) error           { return nil }
