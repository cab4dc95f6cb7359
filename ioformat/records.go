// Package ioformat reads and writes the tuple file format described in
// spec.md §6: a header line `#(field1,field2,…)` followed by one
// parenthesized, comma-delimited tuple per line. spec.md explicitly treats
// textual parsing as an external collaborator's job (§1 "Explicitly out of
// scope"); this package is that collaborator, and the only place in the
// repository that ever sees the on-disk record shapes.
package ioformat

import (
	"github.com/fib-lab/gridsim/entity/cross"
	"github.com/fib-lab/gridsim/entity/road"
)

// CarRecord is the raw input tuple (id, from_cross, to_cross, cap_speed,
// plan_time) from spec.md §6.
type CarRecord struct {
	ID        int32
	FromCross int32
	ToCross   int32
	CapSpeed  int
	PlanTime  int
}

// RoadRecord is the raw input tuple (id, length, speed_limit, channels,
// from_cross, to_cross, is_duplex).
type RoadRecord struct {
	ID         int32
	Length     int
	SpeedLimit int
	Channels   int
	FromCross  int32
	ToCross    int32
	Duplex     bool
}

// ToEntity converts a RoadRecord into the entity type the network is built
// from.
func (rr RoadRecord) ToEntity() *road.Road {
	return &road.Road{
		ID:           rr.ID,
		Length:       rr.Length,
		SpeedLimit:   rr.SpeedLimit,
		ChannelCount: rr.Channels,
		FromCross:    rr.FromCross,
		ToCross:      rr.ToCross,
		Duplex:       rr.Duplex,
	}
}

// CrossRecord is the raw input tuple (id, slot0_road, slot1_road,
// slot2_road, slot3_road), -1 meaning no road in that slot.
type CrossRecord struct {
	ID    int32
	Slots [4]int32
}

// ToEntity converts a CrossRecord into the entity type the network is
// built from.
func (cr CrossRecord) ToEntity() *cross.Cross {
	return &cross.Cross{ID: cr.ID, Slots: cr.Slots}
}

// AnswerRecord is the optional pre-computed route tuple (car_id,
// start_tick, road_id, road_id, …). When supplied for a car, the route
// planner is bypassed for that car entirely.
type AnswerRecord struct {
	CarID     int32
	StartTick int
	Roads     []int32
}

// OutputRecord is the per-car result tuple (car_id, start_tick, road_id_1,
// …, road_id_k) emitted after routing, per spec.md §6.
type OutputRecord struct {
	CarID     int32
	StartTick int
	Roads     []int32
}
