package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/cross"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/entity/road"
)

// buildFourWay builds one intersection X with four incident one-way roads,
// each incoming toward X: south at slot 0, west at slot 1, north at slot 2
// (opposite south), east at slot 3. Every road is length 10, speed limit 5,
// one lane. Four outgoing roads (20..23) from X to the far crosses are also
// registered, but they sit in none of X's slots, so the scheduler never
// routes a crossing car onto them; these fixtures serve allowedTurns checks.
func buildFourWay(t *testing.T) (*network.Network, map[string]int32) {
	t.Helper()
	const x = int32(1)
	farCross := map[string]int32{"south": 100, "west": 101, "north": 102, "east": 103}
	inRoad := map[string]int32{"south": 10, "west": 11, "north": 12, "east": 13}
	outRoad := map[string]int32{"south": 20, "west": 21, "north": 22, "east": 23}

	cm := cross.NewManager()
	require.NoError(t, cm.Add(&cross.Cross{ID: x, Slots: [4]int32{inRoad["south"], inRoad["west"], inRoad["north"], inRoad["east"]}}))
	for _, id := range farCross {
		require.NoError(t, cm.Add(&cross.Cross{ID: id}))
	}

	rm := road.NewManager()
	for name, id := range inRoad {
		require.NoError(t, rm.Add(&road.Road{ID: id, Length: 10, SpeedLimit: 5, ChannelCount: 1, FromCross: farCross[name], ToCross: x}))
	}
	for name, id := range outRoad {
		require.NoError(t, rm.Add(&road.Road{ID: id, Length: 10, SpeedLimit: 5, ChannelCount: 1, FromCross: x, ToCross: farCross[name]}))
	}
	net, err := network.New(cm, rm)
	require.NoError(t, err)
	return net, inRoad
}

func waitingCarOn(w *World, net *network.Network, roadName string, roadIDs map[string]int32, plan *car.Plan) {
	roadID := roadIDs[roadName]
	r := net.Roads.Get(roadID)
	dir, _ := r.DirectionFrom(r.FromCross)
	ln := w.lanesForDirection(roadID, dir)[0]
	c := &car.Car{ID: plan.CarID, CapSpeed: plan.CapSpeed, S: 0, State: car.Waiting}
	ln.PushBack(c)
	w.cars[c.ID] = c
	w.plans[c.ID] = plan
}

func TestAllowedTurnsRightRemovedByLeftSideStraight(t *testing.T) {
	net, ids := buildFourWay(t)
	w := newTestWorld(net, 1)

	// South wants right (toward east, three slots on: (0+3)%4=3=east).
	// West (south's left-side slot, (0+1)%4=1) has a waiting car going
	// straight, toward east ((1+2)%4=3).
	waitingCarOn(w, net, "west", ids, planFor(1, []int32{ids["west"], ids["east"]}, 5))
	allowed := allowedTurns(w, 1, ids["south"])
	require.NotContains(t, allowed, turnRight)
	require.Contains(t, allowed, turnStraight)
}

func TestAllowedTurnsRightRemovedByOncomingLeftNoStraight(t *testing.T) {
	net, ids := buildFourWay(t)
	w := newTestWorld(net, 1)

	// South wants right. North (south's opposite, (0+2)%4=2) has a waiting
	// car turning left (toward east, (2+1)%4=3) and nothing going straight.
	waitingCarOn(w, net, "north", ids, planFor(1, []int32{ids["north"], ids["east"]}, 5))
	allowed := allowedTurns(w, 1, ids["south"])
	require.NotContains(t, allowed, turnRight)
}

func TestAllowedTurnsRightAllowedWhenNoConflict(t *testing.T) {
	net, ids := buildFourWay(t)
	w := newTestWorld(net, 1)
	allowed := allowedTurns(w, 1, ids["south"])
	require.Contains(t, allowed, turnRight)
	require.Contains(t, allowed, turnStraight)
	require.Contains(t, allowed, turnLeft)
}

// TestSchedulerDeadlock is scenario S6: a 4-road cycle where every lane's
// entry cell is occupied and every head car needs to cross into the next
// full road. One outer pass makes no progress, so RunScheduler must report
// a global deadlock.
func TestSchedulerDeadlock(t *testing.T) {
	net := buildCycle(t, 5, 5)
	w := newTestWorld(net, 1)

	for i := int32(1); i <= 4; i++ {
		r := net.Roads.Get(i)
		ln := w.lanesForDirection(i, car.Forward)[0]
		head := &car.Car{ID: i*10 + 1, CapSpeed: 5, S: 0, State: car.Waiting}
		tail := &car.Car{ID: i*10 + 2, CapSpeed: 5, S: r.Length - 1, State: car.Settled}
		ln.PushBack(head)
		ln.PushBack(tail)
		w.cars[head.ID] = head
		w.cars[tail.ID] = tail
		next := i%4 + 1
		w.plans[head.ID] = planFor(head.ID, []int32{i, next}, 5)
		w.plans[tail.ID] = planFor(tail.ID, []int32{i, next}, 5)
	}

	err := RunScheduler(w)
	require.Error(t, err)
	var de *DeadlockError
	require.ErrorAs(t, err, &de)
	require.True(t, de.Global)
}
