// Package sim is the live simulation (C3 Admission, C4 Dynamics, C5
// Scheduler, C6 Tick Controller from spec.md §2). Unlike route, which is a
// pure function over an immutable Network, sim owns mutable per-tick state
// and is driven one tick at a time by Controller.Run.
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/lane"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/internal/config"
	"github.com/fib-lab/gridsim/internal/container"
)

// roadLanes holds the per-direction lane slices for one road. Reverse is
// nil for one-way roads.
type roadLanes struct {
	Forward []*lane.Lane
	Reverse []*lane.Lane
}

// CompletionRecord is recorded for every car that reaches its destination,
// feeding the run summary in the stats package.
type CompletionRecord struct {
	CarID     int32
	StartTick int
	EndTick   int
}

// World is the mutable state of one simulation run: the static Network, the
// lanes carved out of every road, every car currently on a road, every
// car's Plan (admitted or not), and the admission-ready queue.
//
// 功能：持有一次仿真运行期间会发生变化的全部状态。
// 说明：改写自调度器运行时状态的组织方式——静态路网只读，车辆与计划
// 按car_id索引，准入队列按start_tick排序——替换原有的proto实体为本仓库
// 的entity/car、entity/lane类型。
type World struct {
	Net *network.Network
	Cfg config.RuntimeConfig
	Log *logrus.Entry

	lanes     map[int32]*roadLanes
	cars      map[int32]*car.Car
	plans     map[int32]*car.Plan
	pending   *container.PriorityQueue[int32]
	completed map[int32]CompletionRecord

	tick int

	// OnTick, if set, is called by Controller.Run once per completed tick,
	// after admission. It exists so a caller (the stats package's Tracker)
	// can sample per-tick world state without World or Controller needing
	// to know anything about run summaries.
	OnTick func(w *World)
}

// NewWorld builds a World from a Network and the full set of routed,
// departure-time-assigned Plans (spec.md §4.2's output). Every road gets
// ChannelCount empty lanes per direction it actually carries.
func NewWorld(net *network.Network, plans []*car.Plan, cfg config.RuntimeConfig, log *logrus.Entry, firstTick int) *World {
	w := &World{
		Net:       net,
		Cfg:       cfg,
		Log:       log,
		lanes:     make(map[int32]*roadLanes),
		cars:      make(map[int32]*car.Car),
		plans:     make(map[int32]*car.Plan),
		pending:   container.NewPriorityQueue[int32](),
		completed: make(map[int32]CompletionRecord),
		tick:      firstTick,
	}
	for _, r := range net.Roads.All() {
		rl := &roadLanes{}
		for k := 0; k < r.ChannelCount; k++ {
			rl.Forward = append(rl.Forward, lane.New(r.ID, car.Forward, k))
		}
		if r.Duplex {
			for k := 0; k < r.ChannelCount; k++ {
				rl.Reverse = append(rl.Reverse, lane.New(r.ID, car.Reverse, k))
			}
		}
		w.lanes[r.ID] = rl
	}
	for _, p := range plans {
		w.plans[p.CarID] = p
		w.pending.Push(p.CarID, float64(p.StartTick))
	}
	return w
}

// Tick returns the tick currently being processed.
func (w *World) Tick() int { return w.tick }

// Completed returns every car's completion record, keyed by car id.
func (w *World) Completed() map[int32]CompletionRecord { return w.completed }

// ActiveCount returns the number of cars currently on a road.
func (w *World) ActiveCount() int { return len(w.cars) }

// PendingCount returns the number of cars not yet admitted.
func (w *World) PendingCount() int { return w.pending.Len() }

// LaneLen returns the number of cars in one specific lane, identified by
// (road, direction, index). Used by the read-only inspection service to
// report per-road occupancy without exposing World's internal lane slices.
func (w *World) LaneLen(roadID int32, dir car.Direction, index int) int {
	lanes := w.lanesForDirection(roadID, dir)
	if index < 0 || index >= len(lanes) {
		return 0
	}
	return lanes[index].Len()
}

// CountWaiting returns the number of cars currently Waiting across every
// road-direction, the same count the scheduler's deadlock detectors track.
func (w *World) CountWaiting() int {
	return countAllWaiting(w)
}

// Done reports whether the simulation has nothing left to do: no car on
// any road and no car still waiting to be admitted. spec.md §4.6 phrases
// the stop condition purely in terms of cars "Waiting" or "Settled"; we
// additionally require the admission queue to be drained, because checking
// only active cars would falsely report Done on tick 1 before the first
// car has even been admitted — see DESIGN.md "Done condition".
func (w *World) Done() bool {
	return w.ActiveCount() == 0 && w.PendingCount() == 0
}

func (w *World) lanesForDirection(roadID int32, dir car.Direction) []*lane.Lane {
	rl := w.lanes[roadID]
	if rl == nil {
		return nil
	}
	if dir == car.Forward {
		return rl.Forward
	}
	return rl.Reverse
}

func (w *World) effectiveSpeed(c *car.Car) int {
	r := w.Net.Roads.Get(c.CurrentRoad)
	return c.EffectiveSpeed(r.SpeedLimit)
}

func (w *World) isLastRoad(c *car.Car) bool {
	p := w.plans[c.ID]
	return p.IsLastRoad()
}

// terminateCar removes a car that has reached the final road of its plan,
// recording its completion.
func (w *World) terminateCar(c *car.Car) {
	delete(w.cars, c.ID)
	p := w.plans[c.ID]
	w.completed[c.ID] = CompletionRecord{CarID: c.ID, StartTick: p.StartTick, EndTick: w.tick}
	if w.Log != nil {
		w.Log.WithFields(logrus.Fields{"car": c.ID, "tick": w.tick}).Debug("car reached destination")
	}
}
