package sim

import "errors"

// RunResult summarizes how a simulation run ended.
type RunResult struct {
	Done     bool // every car reached its destination
	Ticks    int  // the tick at which the run ended
	Stalled  bool // ended on a non-fatal deadlock, per Cfg.DeadlockFatal
	Deadlock *DeadlockError
}

// Controller drives the fixed per-tick order from spec.md §4.6: C4 Phase A,
// then C5, then C3 admission for the tick just finished, then advance t.
type Controller struct{}

// Run drives w to completion (or to a fatal/stalled deadlock).
func (c *Controller) Run(w *World) (*RunResult, error) {
	for {
		Advance(w)
		if w.Done() {
			return &RunResult{Done: true, Ticks: w.tick}, nil
		}

		if err := RunScheduler(w); err != nil {
			var de *DeadlockError
			if errors.As(err, &de) {
				if w.Cfg.DeadlockFatal {
					return nil, err
				}
				if w.Log != nil {
					w.Log.WithField("tick", w.tick).Warn(de.Error())
				}
				return &RunResult{Ticks: w.tick, Stalled: true, Deadlock: de}, nil
			}
			return nil, err
		}

		AdmitTick(w, w.tick)
		if w.OnTick != nil {
			w.OnTick(w)
		}
		w.tick++
	}
}
