package ioformat

import (
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/cross"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/entity/road"
	"github.com/fib-lab/gridsim/route"
)

// ReadCars parses a car record file: (id, from_cross, to_cross, cap_speed,
// plan_time).
func ReadCars(r io.Reader) ([]CarRecord, error) {
	rows, err := readTuples(r)
	if err != nil {
		return nil, err
	}
	out := make([]CarRecord, 0, len(rows))
	for i, f := range rows {
		if err := wantFields(f, 5); err != nil {
			return nil, fmt.Errorf("car record %d: %w", i, err)
		}
		id, err := atoi32(f[0])
		if err != nil {
			return nil, fmt.Errorf("car record %d: %w", i, err)
		}
		from, err := atoi32(f[1])
		if err != nil {
			return nil, fmt.Errorf("car record %d: %w", i, err)
		}
		to, err := atoi32(f[2])
		if err != nil {
			return nil, fmt.Errorf("car record %d: %w", i, err)
		}
		capSpeed, err := atoi(f[3])
		if err != nil {
			return nil, fmt.Errorf("car record %d: %w", i, err)
		}
		planTime, err := atoi(f[4])
		if err != nil {
			return nil, fmt.Errorf("car record %d: %w", i, err)
		}
		out = append(out, CarRecord{ID: id, FromCross: from, ToCross: to, CapSpeed: capSpeed, PlanTime: planTime})
	}
	return out, nil
}

// ReadRoads parses a road record file: (id, length, speed_limit, channels,
// from_cross, to_cross, is_duplex).
func ReadRoads(r io.Reader) ([]RoadRecord, error) {
	rows, err := readTuples(r)
	if err != nil {
		return nil, err
	}
	out := make([]RoadRecord, 0, len(rows))
	for i, f := range rows {
		if err := wantFields(f, 7); err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		id, err := atoi32(f[0])
		if err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		length, err := atoi(f[1])
		if err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		speedLimit, err := atoi(f[2])
		if err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		channels, err := atoi(f[3])
		if err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		from, err := atoi32(f[4])
		if err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		to, err := atoi32(f[5])
		if err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		duplex, err := atobool(f[6])
		if err != nil {
			return nil, fmt.Errorf("road record %d: %w", i, err)
		}
		if length <= 0 || speedLimit <= 0 || channels <= 0 {
			return nil, fmt.Errorf("road record %d: %w: length, speed_limit and channels must be positive", i, ErrInputMalformed)
		}
		out = append(out, RoadRecord{
			ID: id, Length: length, SpeedLimit: speedLimit, Channels: channels,
			FromCross: from, ToCross: to, Duplex: duplex,
		})
	}
	return out, nil
}

// ReadCrosses parses a cross record file: (id, slot0_road, slot1_road,
// slot2_road, slot3_road).
func ReadCrosses(r io.Reader) ([]CrossRecord, error) {
	rows, err := readTuples(r)
	if err != nil {
		return nil, err
	}
	out := make([]CrossRecord, 0, len(rows))
	for i, f := range rows {
		if err := wantFields(f, 5); err != nil {
			return nil, fmt.Errorf("cross record %d: %w", i, err)
		}
		id, err := atoi32(f[0])
		if err != nil {
			return nil, fmt.Errorf("cross record %d: %w", i, err)
		}
		var slots [4]int32
		for s := 0; s < 4; s++ {
			v, err := atoi32(f[s+1])
			if err != nil {
				return nil, fmt.Errorf("cross record %d: %w", i, err)
			}
			slots[s] = v
		}
		out = append(out, CrossRecord{ID: id, Slots: slots})
	}
	return out, nil
}

// ReadAnswers parses an optional pre-computed answer file: (car_id,
// start_tick, road_id, road_id, …). Each car's route has at least one road.
func ReadAnswers(r io.Reader) ([]AnswerRecord, error) {
	rows, err := readTuples(r)
	if err != nil {
		return nil, err
	}
	out := make([]AnswerRecord, 0, len(rows))
	for i, f := range rows {
		if err := wantMinFields(f, 3); err != nil {
			return nil, fmt.Errorf("answer record %d: %w", i, err)
		}
		carID, err := atoi32(f[0])
		if err != nil {
			return nil, fmt.Errorf("answer record %d: %w", i, err)
		}
		startTick, err := atoi(f[1])
		if err != nil {
			return nil, fmt.Errorf("answer record %d: %w", i, err)
		}
		roads := make([]int32, 0, len(f)-2)
		for _, rf := range f[2:] {
			rid, err := atoi32(rf)
			if err != nil {
				return nil, fmt.Errorf("answer record %d: %w", i, err)
			}
			roads = append(roads, rid)
		}
		out = append(out, AnswerRecord{CarID: carID, StartTick: startTick, Roads: roads})
	}
	return out, nil
}

// BuildNetwork assembles a Network from already-parsed road and cross
// records, producing the same network/roadmanager/crossmanager wiring a
// caller building the network by hand would.
func BuildNetwork(roads []RoadRecord, crosses []CrossRecord) (*network.Network, error) {
	rm := road.NewManager()
	for _, rr := range roads {
		if err := rm.Add(rr.ToEntity()); err != nil {
			return nil, err
		}
	}
	cm := cross.NewManager()
	for _, cr := range crosses {
		if err := cm.Add(cr.ToEntity()); err != nil {
			return nil, err
		}
	}
	return network.New(cm, rm)
}

// BuildPlans turns car records into routed Plans, honoring any supplied
// answer records by skipping the route planner for that car entirely and
// using the pre-computed road sequence and start tick verbatim — the
// behavior spec.md §6 describes for the "optional pre-computed answer
// record". Cars without a matching answer are routed with route.BuildPlan
// and have their departure times assigned by route.AssignDepartureTimes
// (ratePerTick, firstTick); answer-supplied plans are left out of that pass
// since their start tick already came from the answer file.
func BuildPlans(n *network.Network, cars []CarRecord, answers []AnswerRecord, ratePerTick, firstTick int) ([]*car.Plan, error) {
	answerByCar := lo.SliceToMap(answers, func(a AnswerRecord) (int32, AnswerRecord) {
		return a.CarID, a
	})

	var plans []*car.Plan
	var toAssign []*route.DeparturePlan
	for _, cr := range cars {
		if a, ok := answerByCar[cr.ID]; ok {
			plans = append(plans, &car.Plan{
				CarID:     cr.ID,
				Origin:    cr.FromCross,
				Dest:      cr.ToCross,
				CapSpeed:  cr.CapSpeed,
				PlanTime:  cr.PlanTime,
				StartTick: a.StartTick,
				Roads:     a.Roads,
			})
			continue
		}
		p, err := route.BuildPlan(n, cr.ID, cr.FromCross, cr.ToCross, cr.CapSpeed, cr.PlanTime)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
		toAssign = append(toAssign, &route.DeparturePlan{Plan: p})
	}
	route.AssignDepartureTimes(toAssign, ratePerTick, firstTick)
	return plans, nil
}
