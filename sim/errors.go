package sim

import "fmt"

// DeadlockError is returned when the scheduler's stop condition from
// spec.md §4.5 fires: either a full pass over every intersection made no
// progress (Global), or a single (cross, road) inner loop made no progress
// (Cross/Road set, Global false).
type DeadlockError struct {
	Global bool
	Cross  int32
	Road   int32
}

func (e *DeadlockError) Error() string {
	if e.Global {
		return "sim: global deadlock, a full pass over every intersection made no progress"
	}
	return fmt.Sprintf("sim: local deadlock at cross %d on road %d, no progress after a full inner pass", e.Cross, e.Road)
}

// invariantViolation panics, matching the teacher's convention of loud
// assertions for conditions that a correctly-built Network and Plan set
// should make unreachable (spec.md §7 "InvariantViolation").
func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("sim: invariant violation: "+format, args...))
}
