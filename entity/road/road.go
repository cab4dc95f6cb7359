// Package road models directional multi-lane roads, per spec.md §3.
package road

import "github.com/fib-lab/gridsim/entity/car"

// Road is an immutable road description. The forward direction
// FromCross->ToCross always exists; the reverse direction exists only
// when Duplex is true.
type Road struct {
	ID           int32
	Length       int // positive integer cells
	SpeedLimit   int // positive integer cells/tick
	ChannelCount int // lanes per direction
	FromCross    int32
	ToCross      int32
	Duplex       bool
}

// HasDirectionInto reports whether this road carries traffic into cross,
// and if so which direction holds those lanes. This is the single place
// that encodes "direction at X" from spec.md §4.1: the forward direction
// (FromCross->ToCross) brings cars into ToCross; the reverse direction
// (only present when Duplex) brings cars into FromCross. Every other
// component (admission, dynamics, scheduler) must go through this method
// so that "which lanes of R hold cars heading into X" is answered
// consistently everywhere.
func (r *Road) HasDirectionInto(crossID int32) (dir car.Direction, ok bool) {
	if crossID == r.ToCross {
		return car.Forward, true
	}
	if r.Duplex && crossID == r.FromCross {
		return car.Reverse, true
	}
	return car.Forward, false
}

// DirectionFrom reports which direction carries cars leaving crossID onto
// this road: the forward direction leaves FromCross, the reverse direction
// (only when Duplex) leaves ToCross. Admission uses this to place a car
// onto its first road; the scheduler uses it to place a car crossing into
// this road from an intersection.
func (r *Road) DirectionFrom(crossID int32) (dir car.Direction, ok bool) {
	if crossID == r.FromCross {
		return car.Forward, true
	}
	if r.Duplex && crossID == r.ToCross {
		return car.Reverse, true
	}
	return car.Forward, false
}

// OtherEnd returns the intersection at the far end of the road from cross.
func (r *Road) OtherEnd(crossID int32) int32 {
	if crossID == r.FromCross {
		return r.ToCross
	}
	return r.FromCross
}
