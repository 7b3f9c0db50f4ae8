package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/meteorwatch/simulator/internal/analytics"
	"github.com/meteorwatch/simulator/internal/config"
	"github.com/meteorwatch/simulator/internal/database"
	"github.com/meteorwatch/simulator/internal/engine"
	"github.com/meteorwatch/simulator/internal/influx"
	"github.com/meteorwatch/simulator/internal/logging"
	"github.com/meteorwatch/simulator/internal/monitor"
	"github.com/meteorwatch/simulator/internal/rng"
	"github.com/meteorwatch/simulator/internal/sim"
	"github.com/meteorwatch/simulator/internal/storage"
	"github.com/meteorwatch/simulator/internal/tracker"
	"github.com/meteorwatch/simulator/internal/worker"
	"github.com/meteorwatch/simulator/pkg/core"

	"github.com/rs/zerolog"
)

// Version can be set at build time via ldflags.
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

const appName = "meteorsim"

var (
	sessionStartTime = time.Now()

	slogManager *logging.SlogManager
	logger      *slog.Logger

	simEngine *engine.Engine
)

func main() {
	configDir := flag.String("config", ".", "directory containing meteorsim.cfg.json")
	maxTicks := flag.Uint64("ticks", 0, "stop after this many ticks (0 = run until collision or signal)")
	seed := flag.Int64("seed", 0, "simulation seed (0 = derive from clock)")
	realtime := flag.Bool("realtime", false, "pace the loop at the configured tick rate")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (built %s)\n", appName, Version, BuildDate)
		return
	}

	if err := run(*configDir, *maxTicks, *seed, *realtime); err != nil {
		if logger != nil {
			logger.Error("Fatal error", "error", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(configDir string, maxTicks uint64, seed int64, realtime bool) error {
	if err := config.Load(configDir); err != nil {
		return err
	}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFilePath := logging.LogFilePath(logsDir, appName, sessionStartTime)
	logFile, err := os.Create(logFilePath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	slogManager = logging.NewSlogManager()
	slogManager.Setup(logFile, config.GetString("logLevel"), func() []slog.Attr {
		if simEngine == nil {
			return nil
		}
		return []slog.Attr{slog.Uint64("tick", simEngine.Snapshot().Ticks)}
	})
	logger = slogManager.Logger()
	logger.Info("Starting", "app", appName, "version", Version, "buildDate", BuildDate)

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	// simulation setup
	simCfg := config.GetSimConfig()
	if maxTicks > 0 {
		simCfg.MaxTicks = maxTicks
	}
	if seed != 0 {
		simCfg.Seed = seed
	}
	if simCfg.Seed == 0 {
		simCfg.Seed = time.Now().UnixNano()
	}
	if realtime {
		simCfg.Realtime = true
	}

	field := sim.Field{Width: simCfg.FieldWidth, Height: simCfg.FieldHeight}
	params := sim.Params{
		CraftHalfSize:     simCfg.CraftHalfSize,
		MeteorRadius:      simCfg.MeteorRadius,
		MaxSpeed:          simCfg.MaxSpeed,
		DetectionRadius:   simCfg.DetectionRadius,
		AvoidanceStrength: simCfg.AvoidanceStrength,
		CenteringStrength: simCfg.CenteringStrength,
		SpawnChance:       simCfg.SpawnChance,
	}
	world := sim.NewWorld(field, params, rng.New(simCfg.Seed))

	trackerCfg := config.GetTrackerConfig()
	trk := tracker.New(params)
	trk.DangerThreshold = trackerCfg.DangerThreshold
	trk.CriticalThreshold = trackerCfg.CriticalThreshold

	store := analytics.NewStore(trk.CriticalThreshold)

	// database connection (optional)
	var dbManager *database.Manager
	if config.GetDBConfig().Enabled {
		dbManager = database.NewManager(zlog)
		if err := dbManager.Connect(); err != nil {
			logger.Error("Database connection failed, continuing without it", "error", err)
			dbManager = nil
		} else {
			if dbManager.ShouldSaveLocal {
				dbManager.SqliteFilePath = filepath.Join(logsDir,
					fmt.Sprintf("%s.%s.db", appName, sessionStartTime.Format("20060102_150405")))
			}
			if err := dbManager.Setup(); err != nil {
				return fmt.Errorf("database setup failed: %w", err)
			}
		}
	}

	// storage backend
	storageCfg := config.GetStorageConfig()
	storageDeps := storage.Dependencies{
		LogManager:        slogManager,
		CriticalThreshold: trk.CriticalThreshold,
	}
	if dbManager != nil {
		storageDeps.DB = dbManager.DB
	}
	backend, err := storage.NewBackend(storageCfg, storageDeps)
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer backend.Close()

	// influx connection (optional)
	var influxManager *influx.Manager
	if config.GetInfluxConfig().Enabled {
		backupPath := filepath.Join(logsDir,
			fmt.Sprintf("%s.influx_backup.%s.gz", appName, sessionStartTime.Format("20060102_150405")))
		influxManager = influx.NewManager(zlog, backupPath)
		if err := influxManager.Connect(); err != nil {
			logger.Error("InfluxDB connection failed, continuing without it", "error", err)
			influxManager = nil
		} else {
			defer influxManager.Close()
		}
	}

	run := &core.Run{
		Name:      fmt.Sprintf("run_%s", sessionStartTime.Format("20060102_150405")),
		Seed:      simCfg.Seed,
		StartTime: sessionStartTime.UTC(),
	}
	if err := backend.StartRun(run); err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}

	// async write path
	queues := worker.NewQueues()
	workerManager, err := worker.NewManager(worker.Dependencies{
		Backend:           backend,
		LogManager:        slogManager,
		Influx:            influxManager,
		RunName:           run.Name,
		CriticalThreshold: trk.CriticalThreshold,
	}, queues)
	if err != nil {
		return fmt.Errorf("failed to create worker manager: %w", err)
	}
	workerManager.StartWriters(worker.DefaultDrainInterval)

	tickRate := simCfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	simEngine = engine.New(engine.Config{
		TickInterval: time.Second / time.Duration(tickRate),
		Realtime:     simCfg.Realtime,
		MaxTicks:     simCfg.MaxTicks,
	}, engine.Dependencies{
		World:   world,
		Tracker: trk,
		Store:   store,
		Events:  queues.NearMisses,
		Log:     logger,
	})

	// status monitor
	var monitorService *monitor.Service
	monitorCfg := config.GetMonitorConfig()
	if monitorCfg.Enabled {
		monitorService = monitor.NewService(monitor.Dependencies{
			Engine:        simEngine,
			WorkerManager: workerManager,
			Backend:       backend,
			LogManager:    slogManager,
			Influx:        influxManager,
			RunName:       run.Name,
			Interval:      monitorCfg.Interval,
		})
		if err := monitorService.Start(); err != nil {
			return fmt.Errorf("failed to start monitor: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Run started",
		"name", run.Name,
		"seed", simCfg.Seed,
		"field", fmt.Sprintf("%gx%g", field.Width, field.Height),
		"tickRate", tickRate,
		"realtime", simCfg.Realtime,
	)

	status := simEngine.Run(ctx)

	if monitorService != nil {
		monitorService.Stop()
	}
	workerManager.Stop()

	result := simEngine.Result()
	report := store.BuildReport()
	if err := backend.EndRun(result, report); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}

	if exportable, ok := backend.(storage.Exportable); ok {
		logger.Info("Report written", "path", exportable.GetExportedFilePath())
	}

	if dbManager != nil && dbManager.ShouldSaveLocal {
		if err := dbManager.DumpMemoryToDisk(); err != nil {
			logger.Error("Failed to dump local DB to disk", "error", err)
		}
	}

	logger.Info("Run finished",
		"status", status,
		"ticks", result.Ticks,
		"score", result.Score,
		"runtime", result.TotalRuntime,
		"nearMisses", result.NearMisses,
		"collided", result.Collided,
	)
	return nil
}
