package sim

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/lane"
	"github.com/fib-lab/gridsim/entity/road"
)

// Turn encodes the relative heading a crossing car takes at an
// intersection, measured in compass slots: (destination_slot - current_slot
// + 4) mod 4. 0 (a U-turn) never appears in practice since a road's own
// slot can't also be its destination.
const (
	turnUTurn    = 0
	turnLeft     = 1
	turnStraight = 2
	turnRight    = 3
)

// RunScheduler is the Intersection Scheduler (C5 in spec.md §4.5): the
// hardest part of the system. It repeatedly walks every intersection in
// ascending id order, and within each intersection every incident road in
// ascending road id order, moving one eligible car across at a time, until
// no car is Waiting. A full pass that reduces no car's Waiting state is
// reported as a global DeadlockError.
func RunScheduler(w *World) error {
	for {
		before := countAllWaiting(w)
		if before == 0 {
			return nil
		}
		for _, crossID := range w.Net.Crosses.IDs() {
			for _, roadID := range incidentRoadIDsAscending(w, crossID) {
				dir, ok := w.Net.DirectionInto(crossID, roadID)
				if !ok {
					continue
				}
				if err := runInner(w, crossID, roadID, dir); err != nil {
					return err
				}
			}
		}
		if countAllWaiting(w) == before {
			return &DeadlockError{Global: true}
		}
	}
}

// incidentRoadIDsAscending returns crossID's incident road ids (skipping
// empty slots), sorted ascending — spec.md §4.5 walks roads in ascending
// road id order, not compass slot order.
func incidentRoadIDsAscending(w *World, crossID int32) []int32 {
	slots := w.Net.IncidentRoads(crossID)
	ids := make([]int32, 0, 4)
	for _, s := range slots {
		if s != -1 {
			ids = append(ids, s)
		}
	}
	slices.Sort(ids)
	return ids
}

// runInner repeatedly moves one eligible car from roadID's lanes across
// crossID, until no eligible car remains, the intersection's outgoing
// capacity runs dry, or a full inner pass makes no progress (a local
// deadlock).
func runInner(w *World, crossID, roadID int32, dir car.Direction) error {
	lanes := w.lanesForDirection(roadID, dir)
	for {
		before := countWaitingIn(lanes)
		if before == 0 {
			return nil
		}
		allowed := allowedTurns(w, crossID, roadID)
		head, turn, ok := selectCarFromRoad(w, crossID, lanes, allowed)
		if !ok {
			return nil
		}

		curSlot := w.Net.SlotOf(crossID, roadID)
		outSlot := (curSlot + turn) % 4
		outRoadID := w.Net.IncidentRoads(crossID)[outSlot]
		if outRoadID == -1 {
			invariantViolation("cross %d: turn %d from road %d has no outgoing road", crossID, turn, roadID)
		}
		outRoad := w.Net.Roads.Get(outRoadID)
		outDir, ok := outRoad.DirectionFrom(crossID)
		if !ok {
			invariantViolation("cross %d: outgoing road %d has no direction leaving it", crossID, outRoadID)
		}
		outLanes := w.lanesForDirection(outRoadID, outDir)

		chosen := -1
		for i, ol := range outLanes {
			tail := ol.Tail()
			if tail == nil || tail.S < outRoad.Length-1 {
				chosen = i
				break
			}
		}
		if chosen == -1 {
			// Every outgoing lane's tail sits in the entry cell: this
			// (cross, road) cannot progress further this pass.
			return nil
		}

		oldLane := lanes[head.LaneIndex]
		eff := w.effectiveSpeed(head)
		newS := outRoad.Length - (eff - head.S)
		if newS <= 0 {
			// Not enough leftover speed to actually enter the outgoing
			// road this tick: the car holds its position at the stop
			// line, still the head of its own lane, spec.md §9 OQ#3.
			head.S = 0
			head.State = car.Settled
		} else {
			oldLane.PopFront()
			w.plans[head.ID].Advance()
			head.S = newS
			head.State = car.Settled
			outLanes[chosen].PushBack(head)
			outLanes[chosen].CheckOrdering()
			reDriveAfterCross(w, oldLane)
		}

		if countWaitingIn(lanes) == before {
			return &DeadlockError{Cross: crossID, Road: roadID}
		}
	}
}

// allowedTurns computes D, the set of turns permitted out of roadID at
// crossID this instant, in the fixed order [straight, left, right]
// (spec.md §4.5):
//
//   - straight is allowed unless the opposite slot is empty.
//   - left is allowed unless the left slot is empty or the right-side slot
//     has a waiting head-of-lane car headed straight (straight-from-the-right
//     beats left-from-here).
//   - right is allowed unless the right slot is empty, the left-side slot
//     has a waiting head-of-lane
//     car headed straight (straight-from-the-left beats right-from-here),
//     or the opposite slot has a waiting left but no waiting straight (an
//     oncoming left beats our right).
func allowedTurns(w *World, crossID, roadID int32) []int {
	slot := w.Net.SlotOf(crossID, roadID)
	incident := w.Net.IncidentRoads(crossID)
	leftRoad := incident[(slot+1)%4]
	oppRoad := incident[(slot+2)%4]
	rightRoad := incident[(slot+3)%4]

	allowed := make([]int, 0, 3)
	if oppRoad != -1 {
		allowed = append(allowed, turnStraight)
	}
	if leftRoad != -1 {
		right := waitingTurns(w, crossID, rightRoad)
		if !right[turnStraight] {
			allowed = append(allowed, turnLeft)
		}
	}
	if rightRoad != -1 {
		left := waitingTurns(w, crossID, leftRoad)
		opp := waitingTurns(w, crossID, oppRoad)
		blocked := left[turnStraight] || (opp[turnLeft] && !opp[turnStraight])
		if !blocked {
			allowed = append(allowed, turnRight)
		}
	}
	return allowed
}

// waitingTurns returns the set of turns wanted by the head-of-lane Waiting
// cars of roadID's lanes feeding into crossID, empty if roadID has no such
// direction (including NoRoad).
func waitingTurns(w *World, crossID, roadID int32) map[int]bool {
	if roadID == -1 {
		return map[int]bool{}
	}
	dir, ok := w.Net.DirectionInto(crossID, roadID)
	if !ok {
		return map[int]bool{}
	}
	heads := lo.FilterMap(w.lanesForDirection(roadID, dir), func(ln *lane.Lane, _ int) (*car.Car, bool) {
		head := ln.Head()
		return head, head != nil && head.State == car.Waiting
	})
	turns := lo.Map(heads, func(c *car.Car, _ int) int { return computeTurn(w, crossID, c) })
	return lo.SliceToMap(turns, func(t int) (int, bool) { return t, true })
}

// computeTurn returns the turn a Waiting head car would make at crossID.
// A car on the last road of its plan is always treated as going straight
// (spec.md §4.5) — in practice this never fires, since such a car is
// drained by C4's terminal drain before it can still be Waiting here; it
// remains as a defensive fallback.
func computeTurn(w *World, crossID int32, c *car.Car) int {
	if w.isLastRoad(c) {
		return turnStraight
	}
	p := w.plans[c.ID]
	nextRoad := p.Roads[p.Cursor+1]
	curSlot := w.Net.SlotOf(crossID, c.CurrentRoad)
	nextSlot := w.Net.SlotOf(crossID, nextRoad)
	return ((nextSlot-curSlot)%4 + 4) % 4
}

// selectCarFromRoad picks the single car to move this iteration: the first
// (in D's [straight, left, right] order, then lane-index order) head-of-lane
// Waiting car whose intended turn is allowed.
func selectCarFromRoad(w *World, crossID int32, lanes []*lane.Lane, allowed []int) (*car.Car, int, bool) {
	heads := make([]*car.Car, len(lanes))
	for i, ln := range lanes {
		heads[i] = ln.Head()
	}
	for _, turn := range allowed {
		for _, h := range heads {
			if h != nil && h.State == car.Waiting && computeTurn(w, crossID, h) == turn {
				return h, turn, true
			}
		}
	}
	return nil, 0, false
}

func countAllWaiting(w *World) int {
	return lo.SumBy(w.Net.Roads.All(), func(r *road.Road) int {
		n := countWaitingIn(w.lanesForDirection(r.ID, car.Forward))
		if r.Duplex {
			n += countWaitingIn(w.lanesForDirection(r.ID, car.Reverse))
		}
		return n
	})
}

func countWaitingIn(lanes []*lane.Lane) int {
	n := 0
	for _, ln := range lanes {
		n += lo.CountBy(ln.Cars(), func(c *car.Car) bool { return c.State == car.Waiting })
	}
	return n
}
