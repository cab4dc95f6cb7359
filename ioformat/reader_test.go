package ioformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadRoadsParsesTuples(t *testing.T) {
	input := "#(id,length,speed_limit,channels,from_cross,to_cross,is_duplex)\n" +
		"(1,10,5,2,1,2,0)\n" +
		"(2,8,4,1,2,3,1)\n"

	records, err := ReadRoads(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, RoadRecord{ID: 1, Length: 10, SpeedLimit: 5, Channels: 2, FromCross: 1, ToCross: 2, Duplex: false}, records[0])
	require.Equal(t, RoadRecord{ID: 2, Length: 8, SpeedLimit: 4, Channels: 1, FromCross: 2, ToCross: 3, Duplex: true}, records[1])
}

func TestReadRoadsRejectsMissingHeader(t *testing.T) {
	_, err := ReadRoads(strings.NewReader("(1,10,5,2,1,2,0)\n"))
	require.ErrorIs(t, err, ErrInputMalformed)
}

func TestReadRoadsRejectsWrongArity(t *testing.T) {
	input := "#(id,length,speed_limit,channels,from_cross,to_cross,is_duplex)\n(1,10,5,2,1,2)\n"
	_, err := ReadRoads(strings.NewReader(input))
	require.ErrorIs(t, err, ErrInputMalformed)
}

func TestReadRoadsRejectsNonNumeric(t *testing.T) {
	input := "#(id,length,speed_limit,channels,from_cross,to_cross,is_duplex)\n(1,ten,5,2,1,2,0)\n"
	_, err := ReadRoads(strings.NewReader(input))
	require.ErrorIs(t, err, ErrInputMalformed)
}

func TestReadCrossesParsesNoRoadSlots(t *testing.T) {
	input := "#(id,slot0,slot1,slot2,slot3)\n(1,-1,2,-1,3)\n"
	records, err := ReadCrosses(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, [4]int32{-1, 2, -1, 3}, records[0].Slots)
}

func TestReadAnswersVariableArity(t *testing.T) {
	input := "#(car_id,start_tick,roads...)\n(1,3,10,11,12)\n(2,5,20)\n"
	records, err := ReadAnswers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, []int32{10, 11, 12}, records[0].Roads)
	require.Equal(t, []int32{20}, records[1].Roads)
}

func TestReadAnswersRejectsTooFewFields(t *testing.T) {
	input := "#(car_id,start_tick,roads...)\n(1,3)\n"
	_, err := ReadAnswers(strings.NewReader(input))
	require.ErrorIs(t, err, ErrInputMalformed)
}

func TestBuildNetworkWiresRoadsAndCrosses(t *testing.T) {
	roads := []RoadRecord{{ID: 1, Length: 10, SpeedLimit: 5, Channels: 1, FromCross: 1, ToCross: 2}}
	crosses := []CrossRecord{
		{ID: 1, Slots: [4]int32{-1, -1, 1, -1}},
		{ID: 2, Slots: [4]int32{1, -1, -1, -1}},
	}
	n, err := BuildNetwork(roads, crosses)
	require.NoError(t, err)
	id, ok := n.RoadOf(1, 2)
	require.True(t, ok)
	require.Equal(t, int32(1), id)
}

func TestWriteOutputRecordsFormat(t *testing.T) {
	var buf strings.Builder
	err := WriteOutputRecords(&buf, []OutputRecord{{CarID: 1, StartTick: 3, Roads: []int32{10, 11}}})
	require.NoError(t, err)
	require.Equal(t, "#(car_id,start_tick,road_id...)\n(1,3,10,11)\n", buf.String())
}
