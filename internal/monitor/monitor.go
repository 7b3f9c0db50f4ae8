// Package monitor periodically reports simulation loop status to the log,
// InfluxDB, and the database.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/meteorwatch/simulator/internal/engine"
	"github.com/meteorwatch/simulator/internal/influx"
	"github.com/meteorwatch/simulator/internal/logging"
	"github.com/meteorwatch/simulator/internal/model"
	"github.com/meteorwatch/simulator/internal/storage"
	"github.com/meteorwatch/simulator/internal/worker"
)

// DefaultInterval between status samples.
const DefaultInterval = 5 * time.Second

// PerformanceRecorder is an optional interface storage backends implement
// to persist loop-performance samples.
type PerformanceRecorder interface {
	RecordPerformance(p *model.RunPerformance) error
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Engine        *engine.Engine
	WorkerManager *worker.Manager
	Backend       storage.Backend
	LogManager    *logging.SlogManager
	// Influx, when non-nil, receives a sim_performance point per sample.
	Influx   *influx.Manager
	RunName  string
	Interval time.Duration
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = DefaultInterval
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Sample builds one loop-performance sample from the current engine and
// worker state.
func (s *Service) Sample() model.RunPerformance {
	snap := s.deps.Engine.Snapshot()

	perf := model.RunPerformance{
		Time:        time.Now().UTC(),
		Tick:        snap.Ticks,
		LiveMeteors: uint16(snap.Meteors),
	}
	if s.deps.WorkerManager != nil {
		perf.WriteQueueLength = uint16(s.deps.WorkerManager.QueueDepth())
		perf.LastWriteDurationMs = float32(s.deps.WorkerManager.GetLastWriteDuration().Milliseconds())
	}
	return perf
}

// report logs one sample and fans it out to the database and InfluxDB.
func (s *Service) report() {
	logger := s.deps.LogManager.Logger()
	snap := s.deps.Engine.Snapshot()
	perf := s.Sample()

	logger.Info("Status",
		"status", snap.Status,
		"tick", snap.Ticks,
		"meteors", snap.Meteors,
		"nearMisses", snap.NearMisses,
		"writeQueue", perf.WriteQueueLength,
	)

	if recorder, ok := s.deps.Backend.(PerformanceRecorder); ok {
		if err := recorder.RecordPerformance(&perf); err != nil {
			logger.Error("Error writing perf sample to database", "error", err)
		}
	}

	if s.deps.Influx != nil {
		point := influx.NewPerformancePoint(
			s.deps.RunName,
			perf.Tick,
			int(perf.LiveMeteors),
			int(perf.WriteQueueLength),
			time.Duration(perf.LastWriteDurationMs)*time.Millisecond,
		)
		if err := s.deps.Influx.WritePoint(context.Background(), influx.BucketSimPerformance, point); err != nil {
			logger.Error("Error writing perf point to InfluxDB", "error", err)
		}
	}
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.LogManager.Logger()
		logger.Debug("Starting status monitor goroutine")

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.report()
			}
		}
	}()

	return nil
}

// Stop stops the status monitor
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
