// Package engine drives the simulation loop: it steps the world, feeds the
// proximity scan into the analytics store, and decides when a run is over.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meteorwatch/simulator/internal/analytics"
	"github.com/meteorwatch/simulator/internal/queue"
	"github.com/meteorwatch/simulator/internal/sim"
	"github.com/meteorwatch/simulator/internal/tracker"
	"github.com/meteorwatch/simulator/pkg/core"
)

// DefaultTickInterval paces the loop at 60 ticks per second.
const DefaultTickInterval = time.Second / 60

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning  Status = "RUNNING"
	StatusCollided Status = "COLLIDED"
	StatusStopped  Status = "STOPPED"
)

// Config holds the loop tunables.
type Config struct {
	// TickInterval is the simulated duration of one tick. It defines the
	// time base for event timestamps whether or not the loop is paced.
	TickInterval time.Duration
	// Realtime paces the loop against the wall clock. When false the loop
	// runs as fast as it can; timestamps are unaffected.
	Realtime bool
	// MaxTicks stops the run after this many ticks. Zero means unbounded.
	MaxTicks uint64
}

// Dependencies wires the engine to its collaborators.
type Dependencies struct {
	World   *sim.World
	Tracker *tracker.Tracker
	Store   *analytics.Store
	// Events, when set, receives a copy of every near-miss event for
	// asynchronous consumers.
	Events *queue.Queue[core.NearMissEvent]
	Log    *slog.Logger
}

// Engine owns the run loop. Tick and Run must be called from a single
// goroutine; Snapshot is safe to call from any.
type Engine struct {
	cfg  Config
	deps Dependencies

	mu     sync.Mutex
	status Status

	// observation counters for concurrent readers
	obsTicks   atomic.Uint64
	obsEvents  atomic.Uint64
	obsMeteors atomic.Int64
}

// New builds an engine. World, Tracker and Store are required.
func New(cfg Config, deps Dependencies) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Engine{
		cfg:    cfg,
		deps:   deps,
		status: StatusRunning,
	}
}

// Elapsed returns the simulation time in seconds since the run began.
// It is derived from the tick count, so it is deterministic for a given
// seed regardless of pacing.
func (e *Engine) Elapsed() float64 {
	return float64(e.deps.World.Tick()) * e.cfg.TickInterval.Seconds()
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}

// Tick advances the run by one full simulated tick: world step, proximity
// scan, event recording, collision check. It is a no-op once the run has
// ended and returns the resulting status either way.
func (e *Engine) Tick() Status {
	if e.Status() != StatusRunning {
		return e.Status()
	}

	w := e.deps.World
	w.Step()
	elapsed := e.Elapsed()

	events, collided := e.deps.Tracker.Scan(w.Craft, w.Meteors(), elapsed)
	for _, ev := range events {
		e.deps.Store.Record(ev)
		if e.deps.Events != nil {
			e.deps.Events.Push(ev)
		}
		e.deps.Log.Warn("near miss",
			"tick", w.Tick(),
			"distance", ev.Distance,
			"severity", e.deps.Tracker.Classify(ev.Distance),
		)
	}

	e.obsTicks.Store(w.Tick())
	e.obsEvents.Add(uint64(len(events)))
	e.obsMeteors.Store(int64(len(w.Meteors())))

	if collided {
		e.deps.Store.Finalize(elapsed)
		e.setStatus(StatusCollided)
		e.deps.Log.Info("collision, run over",
			"tick", w.Tick(),
			"elapsed", elapsed,
			"nearMisses", e.deps.Store.Count(),
		)
	}
	return e.Status()
}

// Stop ends a running run cleanly, freezing the analytics at the current
// simulation time. Stopping an already ended run does nothing.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusRunning {
		return
	}
	e.deps.Store.Finalize(float64(e.deps.World.Tick()) * e.cfg.TickInterval.Seconds())
	e.status = StatusStopped
}

// Run loops until a collision, the tick budget, or context cancellation
// ends the run. It always leaves the store finalized.
func (e *Engine) Run(ctx context.Context) Status {
	var tick <-chan time.Time
	if e.cfg.Realtime {
		t := time.NewTicker(e.cfg.TickInterval)
		defer t.Stop()
		tick = t.C
	}

	for {
		if e.cfg.Realtime {
			select {
			case <-ctx.Done():
				e.Stop()
				return e.Status()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				e.Stop()
				return e.Status()
			default:
			}
		}

		if st := e.Tick(); st != StatusRunning {
			return st
		}
		if e.cfg.MaxTicks > 0 && e.deps.World.Tick() >= e.cfg.MaxTicks {
			e.Stop()
			return e.Status()
		}
	}
}

// Result summarizes the run so far. Meaningful once Run has returned.
func (e *Engine) Result() core.RunResult {
	return core.RunResult{
		EndTime:      time.Now().UTC(),
		Ticks:        e.deps.World.Tick(),
		Score:        e.deps.World.Score(),
		Collided:     e.Status() == StatusCollided,
		TotalRuntime: e.deps.Store.Runtime(),
		NearMisses:   e.deps.Store.Count(),
	}
}

// Snapshot is a point-in-time view of the loop for observers running on
// other goroutines.
type Snapshot struct {
	Status     Status
	Ticks      uint64
	NearMisses uint64
	Meteors    int
}

// Snapshot returns the observation counters. Safe for concurrent use.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Status:     e.Status(),
		Ticks:      e.obsTicks.Load(),
		NearMisses: e.obsEvents.Load(),
		Meteors:    int(e.obsMeteors.Load()),
	}
}
