package persistence

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fib-lab/gridsim/internal/config"
	"github.com/fib-lab/gridsim/sim"
)

// Recorder samples a World's state into a Sink once every Every ticks,
// matching World.OnTick's signature so it can be attached directly:
//
//	rec := persistence.NewRecorder(sink, cfg.Snapshot, log)
//	w.OnTick = rec.Sample
type Recorder struct {
	sink  Sink
	every int
	log   *logrus.Entry

	seen int
}

// NewRecorder builds a Recorder over sink, sampling every cfg.Every ticks
// (at least 1).
func NewRecorder(sink Sink, cfg config.SnapshotConfig, log *logrus.Entry) *Recorder {
	every := cfg.Every
	if every < 1 {
		every = 1
	}
	return &Recorder{sink: sink, every: every, log: log}
}

// Sample is called once per completed tick by Controller.Run via
// World.OnTick.
func (r *Recorder) Sample(w *sim.World) {
	r.seen++
	if r.seen%r.every != 0 {
		return
	}
	snap := Snapshot{
		Tick:          w.Tick(),
		ActiveCars:    w.ActiveCount(),
		PendingCars:   w.PendingCount(),
		WaitingCars:   w.CountWaiting(),
		CompletedCars: len(w.Completed()),
	}
	if err := r.sink.Write(context.Background(), snap); err != nil && r.log != nil {
		r.log.WithError(err).WithField("tick", snap.Tick).Warn("failed to persist snapshot")
	}
}
