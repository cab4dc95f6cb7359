package sim

import (
	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/lane"
)

// Advance runs C4 Phase A (spec.md §4.4) over every lane in the world: a
// car's destination-road terminal drain, the head car's own advance, then
// follower propagation down the lane.
func Advance(w *World) {
	for _, r := range w.Net.Roads.All() {
		for _, ln := range w.lanesForDirection(r.ID, car.Forward) {
			advanceLane(w, ln)
		}
		if r.Duplex {
			for _, ln := range w.lanesForDirection(r.ID, car.Reverse) {
				advanceLane(w, ln)
			}
		}
	}
}

// advanceLane implements one lane's worth of Phase A.
func advanceLane(w *World, ln *lane.Lane) {
	// Terminal drain: a head car on the final road of its plan that can
	// reach or pass the stop line this tick (s <= effective_speed) has
	// arrived and leaves the simulation, not the lane's head slot for a
	// following tick. Repeated so a newly-exposed head can drain too.
	for {
		head := ln.Head()
		if head == nil {
			return
		}
		eff := w.effectiveSpeed(head)
		if w.isLastRoad(head) && head.S <= eff {
			ln.PopFront()
			w.terminateCar(head)
			continue
		}
		break
	}

	head := ln.Head()
	if head == nil {
		return
	}
	settleHead(w, head)
	propagateFollowers(w, ln.Cars(), false)
	ln.CheckOrdering()
}

// settleHead applies spec.md §4.4's head-car rule: a car with room to
// spare after using its full effective speed this tick stays on the road,
// Settled; a car that can reach (or would overshoot) the stop line becomes
// Waiting, with any overshoot clamped to zero rather than carried forward —
// see DESIGN.md "head car boundary".
func settleHead(w *World, head *car.Car) {
	eff := w.effectiveSpeed(head)
	if head.S > eff {
		head.S -= eff
		head.State = car.Settled
		return
	}
	head.S -= eff
	if head.S < 0 {
		head.S = 0
	}
	head.State = car.Waiting
}

// propagateFollowers applies the follower rule to every car behind the
// lane's head, in head-to-tail order so each car sees its predecessor's
// already-updated state. When onlyWaiting is true (C4 Phase B, after a
// crossing), cars that are already Settled are left untouched.
func propagateFollowers(w *World, cars []*car.Car, onlyWaiting bool) {
	for i := 1; i < len(cars); i++ {
		cur := cars[i]
		if onlyWaiting && cur.State != car.Waiting {
			continue
		}
		pred := cars[i-1]
		eff := w.effectiveSpeed(cur)
		if pred.State == car.Settled || cur.S-pred.S > eff {
			newS := cur.S - eff
			if pred.S+1 > newS {
				newS = pred.S + 1
			}
			cur.S = newS
			cur.State = car.Settled
		} else {
			cur.State = car.Waiting
		}
	}
}

// reDriveAfterCross is C4 Phase B (spec.md §4.4): after the scheduler
// removes a car from the head of ln, the lane's new head (and its
// still-Waiting followers) may now be free to move.
func reDriveAfterCross(w *World, ln *lane.Lane) {
	for {
		head := ln.Head()
		if head == nil {
			return
		}
		eff := w.effectiveSpeed(head)
		if w.isLastRoad(head) && head.State == car.Waiting && head.S <= eff {
			ln.PopFront()
			w.terminateCar(head)
			continue
		}
		break
	}

	head := ln.Head()
	if head == nil || head.State != car.Waiting {
		return
	}
	// The new head takes the Phase A head rule: with room to spare it
	// advances and is Settled; if it can reach the stop line it stays
	// Waiting, at s clamped to 0, as a crossing candidate.
	settleHead(w, head)
	propagateFollowers(w, ln.Cars(), true)
	ln.CheckOrdering()
}
