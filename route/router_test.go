package route

import (
	"testing"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/cross"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/entity/road"
	"github.com/stretchr/testify/require"
)

func buildLineNetwork(t *testing.T) *network.Network {
	t.Helper()
	cm := cross.NewManager()
	require.NoError(t, cm.Add(&cross.Cross{ID: 1, Slots: [4]int32{-1, -1, 10, -1}}))
	require.NoError(t, cm.Add(&cross.Cross{ID: 2, Slots: [4]int32{10, 20, -1, -1}}))
	require.NoError(t, cm.Add(&cross.Cross{ID: 3, Slots: [4]int32{-1, -1, 20, -1}}))

	rm := road.NewManager()
	require.NoError(t, rm.Add(&road.Road{ID: 10, Length: 6, SpeedLimit: 3, ChannelCount: 1, FromCross: 1, ToCross: 2}))
	require.NoError(t, rm.Add(&road.Road{ID: 20, Length: 6, SpeedLimit: 3, ChannelCount: 1, FromCross: 2, ToCross: 3}))

	n, err := network.New(cm, rm)
	require.NoError(t, err)
	return n
}

func TestShortestPathTwoHop(t *testing.T) {
	n := buildLineNetwork(t)
	roads, err := ShortestPath(n, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []int32{10, 20}, roads)
}

func TestShortestPathUnreachable(t *testing.T) {
	n := buildLineNetwork(t)
	_, err := ShortestPath(n, 3, 1)
	require.Error(t, err)
	var uerr *ErrUnreachable
	require.ErrorAs(t, err, &uerr)
}

func TestShortestPathTieBreakByLowerDestID(t *testing.T) {
	// Two equal-length two-hop routes from 1 to 4: via 2 (id 2) or via 3
	// (id 3). The lower-id intermediate must win.
	cm := cross.NewManager()
	require.NoError(t, cm.Add(&cross.Cross{ID: 1}))
	require.NoError(t, cm.Add(&cross.Cross{ID: 2}))
	require.NoError(t, cm.Add(&cross.Cross{ID: 3}))
	require.NoError(t, cm.Add(&cross.Cross{ID: 4}))

	rm := road.NewManager()
	require.NoError(t, rm.Add(&road.Road{ID: 100, Length: 5, FromCross: 1, ToCross: 3}))
	require.NoError(t, rm.Add(&road.Road{ID: 101, Length: 5, FromCross: 3, ToCross: 4}))
	require.NoError(t, rm.Add(&road.Road{ID: 102, Length: 5, FromCross: 1, ToCross: 2}))
	require.NoError(t, rm.Add(&road.Road{ID: 103, Length: 5, FromCross: 2, ToCross: 4}))

	n, err := network.New(cm, rm)
	require.NoError(t, err)

	roads, err := ShortestPath(n, 1, 4)
	require.NoError(t, err)
	require.Equal(t, []int32{102, 103}, roads)
}

func TestAssignDepartureTimesOnePerTick(t *testing.T) {
	plans := []*DeparturePlan{
		{Plan: &car.Plan{CarID: 3, PlanTime: 0, Origin: 5, CapSpeed: 4}},
		{Plan: &car.Plan{CarID: 1, PlanTime: 0, Origin: 1, CapSpeed: 4}},
		{Plan: &car.Plan{CarID: 2, PlanTime: 0, Origin: 1, CapSpeed: 9}},
	}
	AssignDepartureTimes(plans, 1, 1)

	byCar := map[int32]int{}
	for _, p := range plans {
		byCar[p.Plan.CarID] = p.Plan.StartTick
	}
	require.Equal(t, 1, byCar[2]) // origin 1, highest cap speed -> first
	require.Equal(t, 2, byCar[1]) // origin 1, lower cap speed -> second
	require.Equal(t, 3, byCar[3]) // origin 5 -> last
}
