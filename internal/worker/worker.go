// Package worker drains queued near-miss events into the storage backend
// off the simulation goroutine.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meteorwatch/simulator/internal/influx"
	"github.com/meteorwatch/simulator/internal/logging"
	"github.com/meteorwatch/simulator/internal/queue"
	"github.com/meteorwatch/simulator/internal/storage"
	"github.com/meteorwatch/simulator/pkg/core"
	"go.opentelemetry.io/otel/metric"
)

// DefaultDrainInterval is how often the writer empties its queue.
const DefaultDrainInterval = 250 * time.Millisecond

// Queues holds the write queues the simulation loop feeds.
type Queues struct {
	NearMisses *queue.Queue[core.NearMissEvent]
}

// NewQueues creates empty write queues.
func NewQueues() *Queues {
	return &Queues{
		NearMisses: queue.New[core.NearMissEvent](),
	}
}

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Backend    storage.Backend
	LogManager *logging.SlogManager
	// Influx, when non-nil, receives a run_data point per drained event.
	Influx *influx.Manager
	// RunName tags influx points.
	RunName string
	// CriticalThreshold classifies drained events for metrics tagging.
	CriticalThreshold float64
}

// Manager manages the writer goroutine
type Manager struct {
	deps   Dependencies
	queues *Queues

	stopChan chan struct{}
	wg       sync.WaitGroup

	lastWriteNanos atomic.Int64

	// OTEL metrics (no-op unless a global provider is configured)
	written    metric.Int64Counter
	writeFails metric.Int64Counter
	queueDepth metric.Int64ObservableGauge
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies, queues *Queues) (*Manager, error) {
	if deps.LogManager == nil {
		deps.LogManager = logging.NewSlogManager()
	}

	m := &Manager{
		deps:     deps,
		queues:   queues,
		stopChan: make(chan struct{}),
	}

	mtr := meter()
	var err error

	m.written, err = mtr.Int64Counter(
		"worker.events.written",
		metric.WithDescription("Near-miss events written to storage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating written counter: %w", err)
	}

	m.writeFails, err = mtr.Int64Counter(
		"worker.events.failed",
		metric.WithDescription("Near-miss events that failed to write"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	m.queueDepth, err = mtr.Int64ObservableGauge(
		"worker.queue.depth",
		metric.WithDescription("Near-miss events waiting to be written"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue depth gauge: %w", err)
	}

	_, err = mtr.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(m.queueDepth, int64(m.queues.NearMisses.Len()))
			return nil
		},
		m.queueDepth,
	)
	if err != nil {
		return nil, fmt.Errorf("registering queue depth callback: %w", err)
	}

	return m, nil
}

// StartWriters launches the drain loop. Call Stop to flush and halt it.
func (m *Manager) StartWriters(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultDrainInterval
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.stopChan:
				m.drain()
				return
			case <-ticker.C:
				m.drain()
			}
		}
	}()
}

// drain writes every queued event to the backend.
func (m *Manager) drain() {
	events := m.queues.NearMisses.GetAndEmpty()
	if len(events) == 0 {
		return
	}

	start := time.Now()
	log := m.deps.LogManager.Logger()

	for i := range events {
		if err := m.deps.Backend.RecordNearMiss(&events[i]); err != nil {
			m.writeFails.Add(context.Background(), 1)
			log.Error("Failed to write near miss", "error", err)
			continue
		}
		m.written.Add(context.Background(), 1)

		if m.deps.Influx != nil {
			severity := core.ClassifySeverity(events[i].Distance, m.deps.CriticalThreshold)
			point := influx.NewNearMissPoint(m.deps.RunName, events[i].Timestamp, events[i].Distance, string(severity))
			if err := m.deps.Influx.WritePoint(context.Background(), influx.BucketRunData, point); err != nil {
				log.Error("Failed to write near-miss point", "error", err)
			}
		}
	}

	m.lastWriteNanos.Store(int64(time.Since(start)))
	log.Debug("Drained near-miss queue", "count", len(events), "duration", time.Since(start))
}

// Stop flushes remaining events and halts the writer goroutine.
func (m *Manager) Stop() {
	close(m.stopChan)
	m.wg.Wait()
}

// GetLastWriteDuration returns the duration of the last drain cycle.
func (m *Manager) GetLastWriteDuration() time.Duration {
	return time.Duration(m.lastWriteNanos.Load())
}

// QueueDepth returns the number of events waiting to be written.
func (m *Manager) QueueDepth() int {
	return m.queues.NearMisses.Len()
}
