// Package network is the static Network Model (C1 in spec.md §2): the
// combined view over crosses and roads that the route planner and the
// live simulation both query. Network is built once at startup and never
// mutated afterward (spec.md §3 "Lifecycle"); the Plans derived from it keep
// their road sequence, while their cursor and start tick change as the
// simulation runs.
package network

import (
	"fmt"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/cross"
	"github.com/fib-lab/gridsim/entity/road"
)

// Network combines the cross and road managers and the from/to lookup
// index spec.md §4.1 calls road_of.
type Network struct {
	Crosses *cross.Manager
	Roads   *road.Manager

	// roadByEndpoints indexes roads by their *directed* endpoint pair so
	// RoadOf(from, to) is O(1). A duplex road is indexed under both
	// (from,to) and (to,from).
	roadByEndpoints map[[2]int32]int32
}

// New builds a Network from already-populated cross and road managers.
// It also validates that every road's endpoints are known crosses and
// precomputes the directed from/to index.
func New(crosses *cross.Manager, roads *road.Manager) (*Network, error) {
	n := &Network{
		Crosses:         crosses,
		Roads:           roads,
		roadByEndpoints: make(map[[2]int32]int32),
	}
	for _, r := range roads.All() {
		if crosses.Get(r.FromCross) == nil {
			return nil, fmt.Errorf("network: road %d references unknown cross %d", r.ID, r.FromCross)
		}
		if crosses.Get(r.ToCross) == nil {
			return nil, fmt.Errorf("network: road %d references unknown cross %d", r.ID, r.ToCross)
		}
		n.roadByEndpoints[[2]int32{r.FromCross, r.ToCross}] = r.ID
		if r.Duplex {
			n.roadByEndpoints[[2]int32{r.ToCross, r.FromCross}] = r.ID
		}
	}
	return n, nil
}

// RoadOf returns the road connecting from->to, if any.
func (n *Network) RoadOf(from, to int32) (int32, bool) {
	id, ok := n.roadByEndpoints[[2]int32{from, to}]
	return id, ok
}

// RoadInfo returns the static attributes of a road.
func (n *Network) RoadInfo(roadID int32) (*road.Road, bool) {
	r := n.Roads.Get(roadID)
	return r, r != nil
}

// IncidentRoads returns the four compass-slot road ids for a cross
// (NoRoad for empty slots).
func (n *Network) IncidentRoads(crossID int32) [4]int32 {
	c := n.Crosses.Get(crossID)
	if c == nil {
		return [4]int32{cross.NoRoad, cross.NoRoad, cross.NoRoad, cross.NoRoad}
	}
	return c.IncidentRoads()
}

// DirectionInto answers spec.md §4.1's "which lanes of R hold cars
// heading into X" question by delegating to the road's own endpoint
// comparison (entity/road.Road.HasDirectionInto), so admission, dynamics
// and the scheduler always agree.
func (n *Network) DirectionInto(crossID, roadID int32) (car.Direction, bool) {
	r := n.Roads.Get(roadID)
	if r == nil {
		return car.Forward, false
	}
	return r.HasDirectionInto(crossID)
}

// SlotOf returns the compass slot (0..3) of roadID at crossID, or -1 if
// the road is not incident to that cross.
func (n *Network) SlotOf(crossID, roadID int32) int {
	c := n.Crosses.Get(crossID)
	if c == nil {
		return -1
	}
	return c.SlotOf(roadID)
}
