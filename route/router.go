// Package route is the Route Planner (C2 in spec.md §2): Dijkstra's
// algorithm over the directed edge set built from the network, plus the
// departure-time assignment pass described in spec.md §4.2.
//
// Routing is a pure function over immutable inputs (spec.md §5) and
// shares no mutable state with the live simulation, so unlike
// admission/dynamics/scheduler it never needs a logger or a RuntimeConfig
// reference beyond the admission rate used for departure assignment.
package route

import (
	"fmt"
	"sort"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/internal/container"
)

// edge is one directed hop in the routing graph: travelling roadID from
// the node it hangs off of leads to To, costing Length.
type edge struct {
	To     int32
	Road   int32
	Length int
}

// graph is an adjacency list over cross ids, built once from the Network.
type graph map[int32][]edge

// buildGraph builds the directed edge set {(from_cross, to_cross, length)
// | per road-direction} from spec.md §4.2. Each node's outgoing edges are
// kept sorted by (length, to-cross-id) so that relaxation order is
// deterministic and ties are naturally broken by the lower destination
// id, per spec.md §4.2 "Ties broken by lower destination intersection id".
func buildGraph(n *network.Network) graph {
	g := make(graph)
	for _, r := range n.Roads.All() {
		g[r.FromCross] = append(g[r.FromCross], edge{To: r.ToCross, Road: r.ID, Length: r.Length})
		if r.Duplex {
			g[r.ToCross] = append(g[r.ToCross], edge{To: r.FromCross, Road: r.ID, Length: r.Length})
		}
	}
	for from := range g {
		edges := g[from]
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Length != edges[j].Length {
				return edges[i].Length < edges[j].Length
			}
			return edges[i].To < edges[j].To
		})
	}
	return g
}

// ErrUnreachable is returned when no directed path exists between two
// crosses — spec.md §7 "UnreachableDestination".
type ErrUnreachable struct {
	From, To int32
}

func (e *ErrUnreachable) Error() string {
	return fmt.Sprintf("route: no path from cross %d to cross %d", e.From, e.To)
}

// nodeState tracks the best known distance and predecessor for a cross
// during Dijkstra's algorithm.
type nodeState struct {
	dist      int
	viaRoad   int32
	viaCross  int32
	finalized bool
}

// ShortestPath runs Dijkstra from `from` to `to` over the network's
// directed edge set, breaking ties by ascending destination cross id
// (spec.md §4.2). It returns the ordered road sequence from departure to
// arrival.
func ShortestPath(n *network.Network, from, to int32) ([]int32, error) {
	g := buildGraph(n)
	state := make(map[int32]*nodeState)
	state[from] = &nodeState{dist: 0}

	// priority is (dist, crossID) packed so the heap settles nodes in
	// ascending-distance-then-ascending-id order, matching the tie-break
	// rule even when two frontier nodes share a distance.
	pq := container.NewPriorityQueue[int32]()
	pq.Push(from, priority(0, from))

	for pq.Len() > 0 {
		cur, _, _ := pq.Pop()
		cs := state[cur]
		if cs.finalized {
			continue
		}
		cs.finalized = true
		if cur == to {
			break
		}
		for _, e := range g[cur] {
			nd := cs.dist + e.Length
			ns, ok := state[e.To]
			if !ok {
				ns = &nodeState{dist: nd, viaRoad: e.Road, viaCross: cur}
				state[e.To] = ns
				pq.Push(e.To, priority(nd, e.To))
				continue
			}
			if !ns.finalized && nd < ns.dist {
				ns.dist = nd
				ns.viaRoad = e.Road
				ns.viaCross = cur
				pq.Push(e.To, priority(nd, e.To))
			}
		}
	}

	dst, ok := state[to]
	if !ok || !dst.finalized {
		return nil, &ErrUnreachable{From: from, To: to}
	}

	// walk predecessors back to `from`, then reverse.
	var roads []int32
	cur := to
	for cur != from {
		s := state[cur]
		roads = append(roads, s.viaRoad)
		cur = s.viaCross
	}
	for i, j := 0, len(roads)-1; i < j; i, j = i+1, j-1 {
		roads[i], roads[j] = roads[j], roads[i]
	}
	return roads, nil
}

// priority packs (dist, crossID) into one float64 key so a single-key
// priority queue can settle ties in ascending cross-id order: dist
// dominates the integer part, crossID is a bounded fractional tiebreaker.
func priority(dist int, crossID int32) float64 {
	return float64(dist) + float64(crossID)/1e9
}

// BuildPlan computes a car's shortest route and wraps it in a Plan. The
// plan's StartTick/Cursor are left at their zero values; callers assign
// departure times in a second pass via AssignDepartureTimes.
func BuildPlan(n *network.Network, carID, origin, dest int32, capSpeed, planTime int) (*car.Plan, error) {
	roads, err := ShortestPath(n, origin, dest)
	if err != nil {
		return nil, err
	}
	return &car.Plan{
		CarID:    carID,
		Origin:   origin,
		Dest:     dest,
		CapSpeed: capSpeed,
		PlanTime: planTime,
		Roads:    roads,
	}, nil
}
