package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/geo"
)

const SimConfigPath = "config/formationsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := SimConfigPath
	if p := os.Getenv("FORMATIONSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("formationsim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"scenarios", len(cfg.Scenarios))

	// Terrain is shared read-only by every session
	var nav *geo.Engine
	if cfg.Terrain.Path != "" {
		nav = geo.NewEngine(geo.Config{
			OriginX:  cfg.Terrain.OriginX,
			OriginY:  cfg.Terrain.OriginY,
			CellSize: cfg.Terrain.CellSize,
		})
		if err := nav.LoadTerrainFile(cfg.Terrain.Path); err != nil {
			return fmt.Errorf("loading terrain: %w", err)
		}
	} else {
		slog.Info("no terrain configured, using open ground")
	}

	return runScenarios(ctx, cfg, nav)
}

// runScenarios simulates every scenario in its own session, in parallel.
func runScenarios(ctx context.Context, cfg config.Sim, nav *geo.Engine) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, sc := range cfg.Scenarios {
		g.Go(func() error {
			res, err := runScenario(gctx, cfg, nav, sc)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			res.log()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	slog.Info("formationsim finished", "scenarios", len(cfg.Scenarios))
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
