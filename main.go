package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cellsoup/config"
	"github.com/pthm-cable/cellsoup/renderer"
	"github.com/pthm-cable/cellsoup/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per frame in graphical mode")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	world, err := sim.New(cfg, sim.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	})
	if err != nil {
		slog.Error("failed to create world", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := world.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	seeded := world.SeedPopulation(cfg.Population.Initial)
	slog.Info("world seeded",
		"seed", rngSeed,
		"cells", seeded,
		"world_w", cfg.Derived.WorldW32,
		"world_h", cfg.Derived.WorldH32,
	)

	if *headless {
		runHeadless(world, *maxTicks)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Cell Soup")
	defer rl.CloseWindow()
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	viewer := renderer.NewViewer(world, int32(cfg.Screen.Width), int32(cfg.Screen.Height), *stepsPerUpdate)
	for !rl.WindowShouldClose() {
		viewer.Update()
		viewer.Draw()

		if *maxTicks > 0 && int(world.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless steps the world without graphics until maxTicks (0 = forever).
func runHeadless(world *sim.World, maxTicks int) {
	slog.Info("starting headless simulation", "max_ticks", maxTicks)
	start := time.Now()
	for maxTicks <= 0 || int(world.Tick()) < maxTicks {
		world.Step()
	}
	final := world.SampleNow()
	slog.Info("max ticks reached",
		"tick", world.Tick(),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"population", final.Population,
		"max_generation", final.MaxGeneration,
		"lineages", final.Lineages,
	)
}
