package route

import (
	"sort"

	"github.com/fib-lab/gridsim/entity/car"
)

// DeparturePlan wraps a routed Plan for the departure-ordering pass. It
// exists as its own type (rather than sorting []*car.Plan directly) so a
// caller's intent to run departure assignment is visible at the call site.
type DeparturePlan struct {
	Plan *car.Plan
}

// AssignDepartureTimes implements spec.md §4.2's departure-time
// assignment pass: sort plans by (planTime asc, from asc, cap_speed
// desc), then assign monotonically increasing start ticks such that at
// most ratePerTick cars begin per tick.
//
// This resolves spec.md §9 Open Question #1 (one car per tick globally,
// vs one per origin per tick): we implement the global-rate policy and
// expose it as a parameter, taking "globally" as the more literal reading
// of the source's carNum counter incrementing once per assigned plan
// regardless of origin — see DESIGN.md.
func AssignDepartureTimes(plans []*DeparturePlan, ratePerTick int, firstTick int) {
	if ratePerTick < 1 {
		ratePerTick = 1
	}
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i].Plan, plans[j].Plan
		if a.PlanTime != b.PlanTime {
			return a.PlanTime < b.PlanTime
		}
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		return a.CapSpeed > b.CapSpeed
	})
	for i, p := range plans {
		p.Plan.StartTick = firstTick + i/ratePerTick
	}
}
