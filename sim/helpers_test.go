package sim

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/cross"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/entity/road"
	"github.com/fib-lab/gridsim/internal/config"
)

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return logrus.NewEntry(l)
}

// buildLine builds a straight chain of one-way roads A(1)->B(2)->C(3)->...
// with the given per-road lengths and a common speed limit, one lane each,
// crosses numbered 1..len(lengths)+1. Each cross gets roadIn on slot 0 and
// roadOut on slot 2 (opposite), so every crossing is a straight turn.
func buildLine(t *testing.T, lengths []int, speedLimit int) *network.Network {
	t.Helper()
	cm := cross.NewManager()
	rm := road.NewManager()

	n := len(lengths)
	for i := 0; i <= n; i++ {
		crossID := int32(i + 1)
		slots := [4]int32{-1, -1, -1, -1}
		if i > 0 {
			slots[0] = int32(i) // road arriving from the previous cross
		}
		if i < n {
			slots[2] = int32(i + 1) // road departing to the next cross
		}
		require.NoError(t, cm.Add(&cross.Cross{ID: crossID, Slots: slots}))
	}
	for i, l := range lengths {
		require.NoError(t, rm.Add(&road.Road{
			ID: int32(i + 1), Length: l, SpeedLimit: speedLimit, ChannelCount: 1,
			FromCross: int32(i + 1), ToCross: int32(i + 2),
		}))
	}
	net, err := network.New(cm, rm)
	require.NoError(t, err)
	return net
}

// buildCycle builds a 4-cross cycle 1->2->3->4->1, one lane per road, all
// roads sharing length/speedLimit, each cross wired so the incoming road is
// opposite the outgoing road (straight turn all the way around).
func buildCycle(t *testing.T, length, speedLimit int) *network.Network {
	t.Helper()
	cm := cross.NewManager()
	rm := road.NewManager()

	// road j runs FromCross=j, ToCross=(j mod 4)+1. So cross i's incoming
	// road is the one whose ToCross is i (road i-1, wrapping to 4), and its
	// outgoing road is road i itself; placed in opposite slots so every
	// crossing is a straight turn.
	for i := int32(1); i <= 4; i++ {
		incoming := i - 1
		if incoming == 0 {
			incoming = 4
		}
		require.NoError(t, cm.Add(&cross.Cross{ID: i, Slots: [4]int32{incoming, -1, i, -1}}))
	}
	for i := int32(1); i <= 4; i++ {
		to := i%4 + 1
		require.NoError(t, rm.Add(&road.Road{
			ID: i, Length: length, SpeedLimit: speedLimit, ChannelCount: 1,
			FromCross: i, ToCross: to,
		}))
	}
	net, err := network.New(cm, rm)
	require.NoError(t, err)
	return net
}

func newTestWorld(net *network.Network, firstTick int) *World {
	return NewWorld(net, nil, config.Default(), testLog(), firstTick)
}

func planFor(carID int32, roads []int32, capSpeed int) *car.Plan {
	return &car.Plan{CarID: carID, CapSpeed: capSpeed, Roads: roads}
}
