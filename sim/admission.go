package sim

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/lane"
)

// AdmitTick is the Admission Controller (C3 in spec.md §4.3): it drains
// every plan scheduled to start at tick t, orders the batch deterministically,
// and tries to place each car onto the lanes of its departure road, in lane
// index order, on the first lane that accepts it.
// Cars that can't be placed are deferred one tick and re-queued.
func AdmitTick(w *World, t int) {
	var batch []int32
	for {
		id, pri, ok := w.pending.Peek()
		if !ok || int(pri) != t {
			break
		}
		w.pending.Pop()
		batch = append(batch, id)
	}
	if len(batch) == 0 {
		return
	}

	// spec.md §4.3: process the batch sorted by (starting_road_id asc,
	// car_id asc), so placement order is deterministic regardless of the
	// order plans were queued in.
	sort.Slice(batch, func(i, j int) bool {
		pi, pj := w.plans[batch[i]], w.plans[batch[j]]
		ri, rj := pi.Roads[0], pj.Roads[0]
		if ri != rj {
			return ri < rj
		}
		return batch[i] < batch[j]
	})

	for _, id := range batch {
		plan := w.plans[id]
		if tryAdmit(w, plan) {
			if w.Log != nil {
				w.Log.WithFields(logrus.Fields{"car": id, "tick": t, "road": plan.Roads[0]}).Debug("car admitted")
			}
			continue
		}
		plan.StartTick++
		w.pending.Push(id, float64(plan.StartTick))
		if w.Log != nil {
			w.Log.WithFields(logrus.Fields{"car": id, "tick": t, "deferred_to": plan.StartTick}).Debug("car admission deferred")
		}
	}
}

// tryAdmit tries every lane of the car's departure road in index order,
// per spec.md §4.3's placement policy:
//
//  1. lane empty -> place at s = length - effective_speed.
//  2. lane non-empty, tail has room to cross a full effective_speed gap ->
//     same placement as (1).
//  3. lane non-empty, tail isn't sitting in the entry cell (s = length-1) ->
//     place directly behind the tail, at s = s_tail + 1.
//  4. otherwise, try the next lane.
//
// If no lane admits the car, it is deferred by the caller.
func tryAdmit(w *World, plan *car.Plan) bool {
	roadID := plan.Roads[0]
	r := w.Net.Roads.Get(roadID)
	if r == nil {
		invariantViolation("plan for car %d departs on unknown road %d", plan.CarID, roadID)
	}
	dir, ok := r.DirectionFrom(plan.Origin)
	if !ok {
		invariantViolation("car %d's origin %d is not an endpoint of its departure road %d", plan.CarID, plan.Origin, roadID)
	}
	eff := plan.CapSpeed
	if r.SpeedLimit < eff {
		eff = r.SpeedLimit
	}

	for _, ln := range w.lanesForDirection(roadID, dir) {
		tail := ln.Tail()
		switch {
		case tail == nil:
			place(w, ln, plan, r.Length-eff)
			return true
		case tail.S > 0 && r.Length-tail.S > eff:
			place(w, ln, plan, r.Length-eff)
			return true
		case tail.S != r.Length-1:
			place(w, ln, plan, tail.S+1)
			return true
		}
	}
	return false
}

func place(w *World, ln *lane.Lane, plan *car.Plan, s int) {
	c := &car.Car{
		ID:       plan.CarID,
		CapSpeed: plan.CapSpeed,
		S:        s,
		State:    car.Settled,
	}
	ln.PushBack(c)
	w.cars[c.ID] = c
	ln.CheckOrdering()
}
