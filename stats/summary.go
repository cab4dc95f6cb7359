// Package stats reports fleet-level statistics over a completed run: travel
// time distribution per car and the waiting-car count sampled tick by tick,
// the same kind of summary-over-a-simulated-population report the teacher's
// ecosim package produces over its simulated economic indicators.
package stats

import (
	mstats "github.com/montanaflynn/stats"

	"github.com/fib-lab/gridsim/sim"
)

// Tracker samples World.CountWaiting() once per tick via World.OnTick,
// building up the waiting-count series a completed RunSummary reports.
type Tracker struct {
	waiting []float64
}

// NewTracker creates an empty Tracker. Attach it to a World with
// w.OnTick = tracker.Sample before calling Controller.Run.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Sample records the current tick's waiting-car count. It matches
// sim.World's OnTick signature.
func (t *Tracker) Sample(w *sim.World) {
	t.waiting = append(t.waiting, float64(w.CountWaiting()))
}

// RunSummary is the fleet-level report produced once a run completes.
type RunSummary struct {
	TotalTicks    int
	CarsCompleted int

	MeanTravelTicks   float64
	MedianTravelTicks float64
	P95TravelTicks    float64

	MeanWaiting float64
	MaxWaiting  float64
}

// Summarize computes a RunSummary from a completed World's completion
// records and a Tracker's sampled waiting series. Either input may be
// empty (a run with zero completed cars, or one run without a Tracker
// attached); the corresponding fields are left at zero rather than
// returning an error, since an empty population isn't a malformed one.
func Summarize(totalTicks int, completed map[int32]sim.CompletionRecord, tracker *Tracker) (RunSummary, error) {
	s := RunSummary{TotalTicks: totalTicks, CarsCompleted: len(completed)}

	if len(completed) > 0 {
		travel := make([]float64, 0, len(completed))
		for _, c := range completed {
			travel = append(travel, float64(c.EndTick-c.StartTick))
		}
		mean, err := mstats.Mean(travel)
		if err != nil {
			return s, err
		}
		median, err := mstats.Median(travel)
		if err != nil {
			return s, err
		}
		p95, err := mstats.Percentile(travel, 95)
		if err != nil {
			return s, err
		}
		s.MeanTravelTicks = mean
		s.MedianTravelTicks = median
		s.P95TravelTicks = p95
	}

	if tracker != nil && len(tracker.waiting) > 0 {
		mean, err := mstats.Mean(tracker.waiting)
		if err != nil {
			return s, err
		}
		max, err := mstats.Max(tracker.waiting)
		if err != nil {
			return s, err
		}
		s.MeanWaiting = mean
		s.MaxWaiting = max
	}

	return s, nil
}
