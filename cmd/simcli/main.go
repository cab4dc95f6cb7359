// Command simcli runs one traffic micro-simulation from a set of input
// record files to completion (or to a fatal/stalled deadlock), printing a
// fleet-level run summary and writing output records, per spec.md §6.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fib-lab/gridsim/entity/car"
	"github.com/fib-lab/gridsim/entity/network"
	"github.com/fib-lab/gridsim/internal/config"
	"github.com/fib-lab/gridsim/internal/logging"
	"github.com/fib-lab/gridsim/ioformat"
	"github.com/fib-lab/gridsim/persistence"
	"github.com/fib-lab/gridsim/sim"
	"github.com/fib-lab/gridsim/stats"
)

type cliFlags struct {
	carsPath    string
	roadsPath   string
	crossesPath string
	answersPath string
	outputPath  string
	configPath  string
	firstTick   int
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.carsPath, "cars", "", "car record file (required)")
	flag.StringVar(&f.roadsPath, "roads", "", "road record file (required)")
	flag.StringVar(&f.crossesPath, "crosses", "", "cross record file (required)")
	flag.StringVar(&f.answersPath, "answers", "", "optional pre-computed answer record file")
	flag.StringVar(&f.outputPath, "output", "", "output record file (default: stdout)")
	flag.StringVar(&f.configPath, "config", "", "optional YAML config file")
	flag.IntVar(&f.firstTick, "first-tick", 1, "tick at which the simulation clock starts")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	if f.carsPath == "" || f.roadsPath == "" || f.crossesPath == "" {
		fmt.Fprintln(os.Stderr, "simcli: -cars, -roads and -crosses are required")
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
	log := logging.WithComponent(logger, "simcli")

	net, plans, err := loadNetworkAndPlans(f, runtimeCfg)
	if err != nil {
		fatalf("%v", err)
	}

	w := sim.NewWorld(net, plans, runtimeCfg, log, f.firstTick)

	tracker := stats.NewTracker()
	ctx := context.Background()
	sink, err := persistence.NewSink(ctx, runtimeCfg.Snapshot)
	if err != nil {
		fatalf("opening snapshot sink: %v", err)
	}
	rec := persistence.NewRecorder(sink, runtimeCfg.Snapshot, log)
	w.OnTick = func(w *sim.World) {
		tracker.Sample(w)
		rec.Sample(w)
	}

	result, err := (&sim.Controller{}).Run(w)
	if closeErr := sink.Close(ctx); closeErr != nil {
		log.WithError(closeErr).Warn("failed to close snapshot sink")
	}
	if err != nil {
		fatalf("simulation error: %v", err)
	}

	if result.Stalled {
		log.WithField("tick", result.Ticks).Warn("simulation stalled on a non-fatal deadlock")
	}

	summary, err := stats.Summarize(result.Ticks, w.Completed(), tracker)
	if err != nil {
		fatalf("summarizing run: %v", err)
	}
	log.WithFields(map[string]any{
		"total_ticks":    summary.TotalTicks,
		"cars_completed": summary.CarsCompleted,
		"mean_travel":    summary.MeanTravelTicks,
		"median_travel":  summary.MedianTravelTicks,
		"p95_travel":     summary.P95TravelTicks,
		"mean_waiting":   summary.MeanWaiting,
		"max_waiting":    summary.MaxWaiting,
	}).Info("run complete")

	if err := writeOutput(f.outputPath, plans); err != nil {
		fatalf("writing output: %v", err)
	}
}

// loadNetworkAndPlans reads the three (or four, with answers) input files
// and produces the Network and the routed, departure-assigned Plans the
// world is built from.
func loadNetworkAndPlans(f cliFlags, cfg config.RuntimeConfig) (*network.Network, []*car.Plan, error) {
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

	var answers []ioformat.AnswerRecord
	if f.answersPath != "" {
		answersFile, err := os.Open(f.answersPath)
		if err != nil {
			return nil, nil, err
		}
		defer answersFile.Close()
		answers, err = ioformat.ReadAnswers(answersFile)
		if err != nil {
			return nil, nil, err
		}
	}

	plans, err := ioformat.BuildPlans(net, cars, answers, cfg.AdmissionRatePerTick, f.firstTick)
	if err != nil {
		return nil, nil, err
	}
	return net, plans, nil
}

func writeOutput(path string, plans []*car.Plan) error {
	records := make([]ioformat.OutputRecord, 0, len(plans))
	for _, p := range plans {
		records = append(records, ioformat.OutputRecord{CarID: p.CarID, StartTick: p.StartTick, Roads: p.Roads})
	}

	if path == "" {
		return ioformat.WriteOutputRecords(os.Stdout, records)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return ioformat.WriteOutputRecords(out, records)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "simcli: "+format+"\n", args...)
	os.Exit(1)
}
