// Command evosim runs the artificial-life simulation headless and reports
// day snapshots via structured logs and optional CSV output.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/sim"
	"github.com/pthm-cable/evosim/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	days := flag.Int("days", 365, "Number of simulated days to run")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	summaryEvery := flag.Int("summary-every", 0, "Days between summary logs (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	summaryDays := cfg.Telemetry.SummaryEveryDays
	if *summaryEvery > 0 {
		summaryDays = *summaryEvery
	}

	world, err := sim.New(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"days", *days,
		"population", world.Count(),
		"food", world.FoodCount(),
	)

	var last telemetry.DaySnapshot
	for day := 0; day < *days; day++ {
		last = world.Tick()

		if err := output.WriteSnapshot(last); err != nil {
			slog.Error("failed to write telemetry", "error", err)
			os.Exit(1)
		}

		if summaryDays > 0 && last.Day%summaryDays == 0 {
			slog.Info("daily report", "snapshot", last)
		}

		if last.Population == 0 {
			slog.Info("population extinct", "day", last.Day)
			break
		}
	}

	slog.Info("simulation finished", "snapshot", last)
}
