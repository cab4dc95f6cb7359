package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fib-lab/gridsim/entity/car"
)

// TestAdvanceCarFollowing is scenario S3: one lane, length 20, v_lim 4, two
// cars already placed (head s=16, tail s=17). After one Phase A pass both
// advance by the full speed limit, preserving the gap.
func TestAdvanceCarFollowing(t *testing.T) {
	net := buildLine(t, []int{20}, 4)
	w := newTestWorld(net, 1)
	// Road 1's last road too, but neither car reaches the stop line this
	// tick, so the terminal drain never fires.
	w.plans[1] = planFor(1, []int32{1}, 4)
	w.plans[2] = planFor(2, []int32{1}, 4)

	ln := w.lanesForDirection(1, car.Forward)[0]
	head := &car.Car{ID: 1, CapSpeed: 4, S: 16, State: car.Settled}
	tail := &car.Car{ID: 2, CapSpeed: 4, S: 17, State: car.Settled}
	ln.PushBack(head)
	ln.PushBack(tail)
	w.cars[1], w.cars[2] = head, tail

	Advance(w)

	require.Equal(t, 12, head.S)
	require.Equal(t, 13, tail.S)
}

// TestAdvanceTerminalDrainExactSpeed is scenario S1: a single-road car
// reaches the stop line exactly on its effective speed and terminates
// rather than settling at s=0.
func TestAdvanceTerminalDrainExactSpeed(t *testing.T) {
	net := buildLine(t, []int{10}, 5)
	w := newTestWorld(net, 2)
	w.plans[1] = planFor(1, []int32{1}, 5)

	ln := w.lanesForDirection(1, car.Forward)[0]
	c := &car.Car{ID: 1, CapSpeed: 5, S: 5, State: car.Settled}
	ln.PushBack(c)
	w.cars[1] = c

	Advance(w)

	require.Equal(t, 0, w.ActiveCount())
	require.Contains(t, w.completed, int32(1))
	require.Equal(t, 2, w.completed[1].EndTick)
}

// TestAdvanceHeadBecomesWaitingAndCrossesSameTick covers S2's t=2 step: a
// head car that can just reach the stop line on a non-final road becomes
// Waiting (not Settled) in the same Phase A pass that computed it, so the
// scheduler can still cross it this tick.
func TestAdvanceHeadBecomesWaitingAndCrossesSameTick(t *testing.T) {
	net := buildLine(t, []int{6, 6}, 3)
	w := newTestWorld(net, 2)
	w.plans[1] = planFor(1, []int32{1, 2}, 3)

	ln := w.lanesForDirection(1, car.Forward)[0]
	c := &car.Car{ID: 1, CapSpeed: 3, S: 3, State: car.Settled}
	ln.PushBack(c)
	w.cars[1] = c

	Advance(w)

	require.Equal(t, car.Waiting, c.State)
	require.Equal(t, 0, c.S)

	require.NoError(t, RunScheduler(w))
	require.Equal(t, int32(2), c.CurrentRoad)
	require.Equal(t, 3, c.S)
}
