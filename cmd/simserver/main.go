// Command simserver runs one simulation in the background and exposes its
// live progress over a read-only HTTP/JSON surface — the plain-HTTP
// equivalent of the teacher's network-exposed entity-manager services,
// without requiring a protobuf/connect toolchain (see DESIGN.md).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/cors"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/internal/config"
	"github.com/fib-lab/gridsim/internal/logging"
	"github.com/fib-lab/gridsim/ioformat"
	"github.com/fib-lab/gridsim/sim"
)

type serverFlags struct {
	carsPath    string
	roadsPath   string
	crossesPath string
	configPath  string
	addr        string
	firstTick   int
	tickEvery   time.Duration
}

func parseFlags() serverFlags {
	var f serverFlags
	flag.StringVar(&f.carsPath, "cars", "", "car record file (required)")
	flag.StringVar(&f.roadsPath, "roads", "", "road record file (required)")
	flag.StringVar(&f.crossesPath, "crosses", "", "cross record file (required)")
	flag.StringVar(&f.configPath, "config", "", "optional YAML config file")
	flag.StringVar(&f.addr, "addr", ":8080", "HTTP listen address")
	flag.IntVar(&f.firstTick, "first-tick", 1, "tick at which the simulation clock starts")
	flag.DurationVar(&f.tickEvery, "tick-every", 200*time.Millisecond, "wall-clock delay between ticks, for a watchable live run")
	flag.Parse()
	return f
}

// status is the JSON document served at /status.
type status struct {
	Tick          int    `json:"tick"`
	ActiveCars    int    `json:"active_cars"`
	PendingCars   int    `json:"pending_cars"`
	WaitingCars   int    `json:"waiting_cars"`
	CompletedCars int    `json:"completed_cars"`
	Done          bool   `json:"done"`
	Stalled       bool   `json:"stalled"`
	DeadlockError string `json:"deadlock_error,omitempty"`
}

// roadOccupancy is the JSON shape served at /roads: per-road, per-direction
// lane car counts, the live picture a dashboard would poll to render
// congestion.
type roadOccupancy struct {
	RoadID      int32 `json:"road_id"`
	ForwardCars []int `json:"forward_cars"`
	ReverseCars []int `json:"reverse_cars,omitempty"`
}

// runner owns the one World this process simulates, ticking it forward on
// its own goroutine and serving read-only snapshots under a mutex — the
// simulation itself is single-threaded (spec.md §5) even though the HTTP
// server serving its state is concurrent.
type runner struct {
	mu      sync.Mutex
	w       *sim.World
	net     *network.Network
	done    bool
	stalled bool
	deadErr string
}

func (r *runner) run(every time.Duration) {
	for {
		r.mu.Lock()
		if r.done {
			r.mu.Unlock()
			return
		}
		sim.Advance(r.w)
		if r.w.Done() {
			r.done = true
			r.mu.Unlock()
			return
		}
		if err := sim.RunScheduler(r.w); err != nil {
			r.done = true
			r.stalled = true
			r.deadErr = err.Error()
			r.mu.Unlock()
			return
		}
		sim.AdmitTick(r.w, r.w.Tick())
		r.mu.Unlock()
		time.Sleep(every)
	}
}

func (r *runner) status() status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return status{
		Tick:          r.w.Tick(),
		ActiveCars:    r.w.ActiveCount(),
		PendingCars:   r.w.PendingCount(),
		WaitingCars:   r.w.CountWaiting(),
		CompletedCars: len(r.w.Completed()),
		Done:          r.done,
		Stalled:       r.stalled,
		DeadlockError: r.deadErr,
	}
}

func (r *runner) roads() []roadOccupancy {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []roadOccupancy
	for _, id := range r.net.Roads.IDs() {
		rd := r.net.Roads.Get(id)
		occ := roadOccupancy{RoadID: id}
		for k := 0; k < rd.ChannelCount; k++ {
			occ.ForwardCars = append(occ.ForwardCars, r.laneLen(id, car.Forward, k))
		}
		if rd.Duplex {
			for k := 0; k < rd.ChannelCount; k++ {
				occ.ReverseCars = append(occ.ReverseCars, r.laneLen(id, car.Reverse, k))
			}
		}
		out = append(out, occ)
	}
	return out
}

func (r *runner) laneLen(roadID int32, dir car.Direction, index int) int {
	return r.w.LaneLen(roadID, dir, index)
}

func main() {
	f := parseFlags()
	if f.carsPath == "" || f.roadsPath == "" || f.crossesPath == "" {
		fmt.Fprintln(os.Stderr, "simserver: -cars, -roads and -crosses are required")
		os.Exit(2)
	}

	rawCfg := config.Config{}
	if f.configPath != "" {
		var err error
		rawCfg, err = config.Load(f.configPath)
		if err != nil {
			fatalf("loading config: %v", err)
		}
	}
	runtimeCfg := config.NewRuntimeConfig(rawCfg)
	logger := logging.New(runtimeCfg.LogLevel)
	log := logging.WithComponent(logger, "simserver")

	net, plans, err := loadNetworkAndPlans(f, runtimeCfg)
	if err != nil {
		fatalf("%v", err)
	}

	r := &runner{
		w:   sim.NewWorld(net, plans, runtimeCfg, log, f.firstTick),
		net: net,
	}
	go r.run(f.tickEvery)

	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, r.status())
	})
	mux.HandleFunc("/roads", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, r.roads())
	})

	handler := cors.Default().Handler(mux)
	log.WithField("addr", f.addr).Info("serving live simulation status")
	if err := http.ListenAndServe(f.addr, handler); err != nil {
		fatalf("http server: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func loadNetworkAndPlans(f serverFlags, cfg config.RuntimeConfig) (*network.Network, []*car.Plan, error) {
	roadsFile, err := os.Open(f.roadsPath)
	if err != nil {
		return nil, nil, err
	}
	defer roadsFile.Close()
	roads, err := ioformat.ReadRoads(roadsFile)
	if err != nil {
		return nil, nil, err
	}

	crossesFile, err := os.Open(f.crossesPath)
	if err != nil {
		return nil, nil, err
	}
	defer crossesFile.Close()
	crosses, err := ioformat.ReadCrosses(crossesFile)
	if err != nil {
		return nil, nil, err
	}

	net, err := ioformat.BuildNetwork(roads, crosses)
	if err != nil {
		return nil, nil, err
	}

	carsFile, err := os.Open(f.carsPath)
	if err != nil {
		return nil, nil, err
	}
	defer carsFile.Close()
	cars, err := ioformat.ReadCars(carsFile)
	if err != nil {
		return nil, nil, err
	}

	plans, err := ioformat.BuildPlans(net, cars, nil, cfg.AdmissionRatePerTick, f.firstTick)
	if err != nil {
		return nil, nil, err
	}
	return net, plans, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "simserver: "+format+"\n", args...)
	os.Exit(1)
}
