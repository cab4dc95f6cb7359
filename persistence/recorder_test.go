package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/cross"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/entity/road"
	"github.com/fib-lab/gridsim/internal/config"
	"github.com/fib-lab/gridsim/sim"
)

type recordingSink struct {
	writes []Snapshot
}

func (s *recordingSink) Write(_ context.Context, snap Snapshot) error {
	s.writes = append(s.writes, snap)
	return nil
}
func (s *recordingSink) Close(context.Context) error { return nil }

func buildTinyNetwork(t *testing.T) *network.Network {
	t.Helper()
	cm := cross.NewManager()
	require.NoError(t, cm.Add(&cross.Cross{ID: 1, Slots: [4]int32{-1, -1, 1, -1}}))
	require.NoError(t, cm.Add(&cross.Cross{ID: 2, Slots: [4]int32{1, -1, -1, -1}}))
	rm := road.NewManager()
	require.NoError(t, rm.Add(&road.Road{ID: 1, Length: 10, SpeedLimit: 5, ChannelCount: 1, FromCross: 1, ToCross: 2}))
	n, err := network.New(cm, rm)
	require.NoError(t, err)
	return n
}

func TestRecorderSamplesEveryNTicks(t *testing.T) {
	sink := &recordingSink{}
	rec := NewRecorder(sink, config.SnapshotConfig{Every: 2}, nil)

	net := buildTinyNetwork(t)
	w := sim.NewWorld(net, []*car.Plan{{CarID: 1, Origin: 1, Dest: 2, CapSpeed: 5, Roads: []int32{1}, StartTick: 1}}, config.Default(), nil, 1)

	rec.Sample(w)
	rec.Sample(w)
	rec.Sample(w)

	require.Len(t, sink.writes, 1)
}

func TestNullSinkDiscardsEverything(t *testing.T) {
	var s NullSink
	require.NoError(t, s.Write(context.Background(), Snapshot{Tick: 1}))
	require.NoError(t, s.Close(context.Background()))
}
