// Package lane models one lane of a road-direction: an ordered sequence
// of Cars from head (closest to the downstream intersection) to tail,
// per spec.md §3 "Lane (Channel)".
//
// A Lane never holds a back-pointer from its Cars; Cars locate themselves
// by (road, direction, lane index) per spec.md §9, and the world looks
// lanes up by that index. New cars only ever join at the tail (admission,
// hand-off from an upstream intersection); cars only ever leave from the
// head (crossing an intersection, or terminating at their destination).
package lane

import (
	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/internal/container"
)

// Lane is one ordered car queue within a road-direction.
type Lane struct {
	Road      int32
	Direction car.Direction
	Index     int

	cars *container.List[*car.Car]
}

// New creates an empty lane.
func New(roadID int32, dir car.Direction, index int) *Lane {
	return &Lane{Road: roadID, Direction: dir, Index: index, cars: container.NewList[*car.Car]()}
}

// Len returns the number of cars currently in the lane.
func (l *Lane) Len() int { return l.cars.Len() }

// Head returns the car closest to the downstream intersection (smallest
// s), or nil if the lane is empty.
func (l *Lane) Head() *car.Car {
	n := l.cars.First()
	if n == nil {
		return nil
	}
	return n.Value
}

// Tail returns the car farthest from the downstream intersection
// (largest s), or nil if the lane is empty.
func (l *Lane) Tail() *car.Car {
	n := l.cars.Last()
	if n == nil {
		return nil
	}
	return n.Value
}

// PushBack appends a car at the tail of the lane and stamps its location
// index fields.
func (l *Lane) PushBack(c *car.Car) {
	c.CurrentRoad = l.Road
	c.CurrentDirection = l.Direction
	c.LaneIndex = l.Index
	l.cars.PushBack(c)
}

// PopFront removes and returns the head car, or nil if the lane is empty.
func (l *Lane) PopFront() *car.Car {
	c, ok := l.cars.RemoveFirst()
	if !ok {
		return nil
	}
	return c
}

// Cars returns every car from head to tail.
func (l *Lane) Cars() []*car.Car {
	return l.cars.Values()
}

// CheckOrdering asserts the invariant from spec.md §8 #1: strictly
// increasing S from head to tail (gap >= 1). It panics on violation,
// matching the teacher's convention of loud invariant assertions
// (spec.md §7 "InvariantViolation ... should assert in debug builds").
func (l *Lane) CheckOrdering() {
	cars := l.Cars()
	for i := 1; i < len(cars); i++ {
		if cars[i].S-cars[i-1].S < 1 {
			panic("lane: ordering invariant violated, cars too close or out of order")
		}
	}
}
