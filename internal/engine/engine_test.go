package engine

import (
	"context"
	"testing"
	"time"

	"github.com/meteorwatch/simulator/internal/analytics"
	"github.com/meteorwatch/simulator/internal/geo"
	"github.com/meteorwatch/simulator/internal/queue"
	"github.com/meteorwatch/simulator/internal/rng"
	"github.com/meteorwatch/simulator/internal/sim"
	"github.com/meteorwatch/simulator/internal/tracker"
	"github.com/meteorwatch/simulator/pkg/core"
)

// newTestEngine builds an engine over a spawn-free world so scenarios can
// place meteors by hand.
func newTestEngine(cfg Config) (*Engine, *sim.World, *analytics.Store) {
	params := sim.DefaultParams()
	params.SpawnChance = 0

	world := sim.NewWorld(sim.DefaultField(), params, rng.New(1))
	tr := tracker.New(params)
	store := analytics.NewStore(tr.CriticalThreshold)

	e := New(cfg, Dependencies{
		World:   world,
		Tracker: tr,
		Store:   store,
	})
	return e, world, store
}

// A slow meteor closing on the craft from the left edge. The craft flees
// right, pins against the wall, and the meteor walks through the danger
// band into a collision.
func TestRunHeadOnApproachEndsInCollision(t *testing.T) {
	e, world, store := newTestEngine(Config{MaxTicks: 20000})
	world.AddMeteor(&sim.Meteor{
		Position: geo.Vec2{X: 0, Y: 300},
		Velocity: geo.Vec2{X: 2, Y: 0},
		Radius:   world.Params.MeteorRadius,
	})

	status := e.Run(context.Background())

	if status != StatusCollided {
		t.Fatalf("status %s, want %s", status, StatusCollided)
	}
	if store.Count() == 0 {
		t.Fatal("expected near-miss events before the collision")
	}
	if !store.Finalized() {
		t.Fatal("store not finalized")
	}

	report := store.BuildReport()
	if report.TotalNearMisses != store.Count() {
		t.Errorf("report total %d, store count %d", report.TotalNearMisses, store.Count())
	}
	prev := -1.0
	for i, ev := range report.NearMisses {
		if ev.Severity != core.SeverityWarning {
			t.Errorf("event %d severity %s, want WARNING", i, ev.Severity)
		}
		if ev.Distance <= 35 || ev.Distance >= 50 {
			t.Errorf("event %d distance %f outside the danger band", i, ev.Distance)
		}
		if ev.Timestamp <= prev {
			t.Errorf("event %d timestamp %f not increasing", i, ev.Timestamp)
		}
		prev = ev.Timestamp
	}
	if report.TotalRuntime != e.Elapsed() {
		t.Errorf("runtime %f, elapsed %f", report.TotalRuntime, e.Elapsed())
	}
}

func TestRunStopsAtTickBudget(t *testing.T) {
	e, world, store := newTestEngine(Config{MaxTicks: 120})

	status := e.Run(context.Background())

	if status != StatusStopped {
		t.Fatalf("status %s, want %s", status, StatusStopped)
	}
	if world.Tick() != 120 {
		t.Errorf("ticks %d, want 120", world.Tick())
	}
	want := 120 * DefaultTickInterval.Seconds()
	if store.Runtime() != want {
		t.Errorf("runtime %f, want %f", store.Runtime(), want)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	e, _, _ := newTestEngine(Config{Realtime: true, TickInterval: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Status, 1)
	go func() { done <- e.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case status := <-done:
		if status != StatusStopped {
			t.Errorf("status %s, want %s", status, StatusStopped)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestTickIsNoOpAfterRunEnds(t *testing.T) {
	e, world, _ := newTestEngine(Config{})
	e.Tick()
	e.Stop()

	ticks := world.Tick()
	if st := e.Tick(); st != StatusStopped {
		t.Errorf("status %s after Stop", st)
	}
	if world.Tick() != ticks {
		t.Error("Tick advanced the world after the run ended")
	}
}

func TestStopDoesNotOverrideCollision(t *testing.T) {
	e, world, store := newTestEngine(Config{})
	world.AddMeteor(&sim.Meteor{
		// advances to (400, 302) on the first tick, 2px from the craft
		Position: geo.Vec2{X: 400, Y: 300},
		Velocity: geo.Vec2{X: 0, Y: 2},
		Radius:   world.Params.MeteorRadius,
	})

	if st := e.Tick(); st != StatusCollided {
		t.Fatalf("status %s, want %s", st, StatusCollided)
	}
	runtime := store.Runtime()
	e.Stop()
	if e.Status() != StatusCollided {
		t.Error("Stop changed a collided run's status")
	}
	if store.Runtime() != runtime {
		t.Error("Stop moved the frozen end time")
	}
}

func TestEventsQueueReceivesCopies(t *testing.T) {
	params := sim.DefaultParams()
	params.SpawnChance = 0
	world := sim.NewWorld(sim.DefaultField(), params, rng.New(1))
	tr := tracker.New(params)
	store := analytics.NewStore(tr.CriticalThreshold)
	sink := queue.New[core.NearMissEvent]()

	e := New(Config{}, Dependencies{
		World:   world,
		Tracker: tr,
		Store:   store,
		Events:  sink,
	})
	// stationary meteor inside the danger band, to the craft's right
	world.AddMeteor(&sim.Meteor{
		Position: geo.Vec2{X: 445, Y: 300},
		Radius:   params.MeteorRadius,
	})

	e.Tick()

	if store.Count() == 0 {
		t.Fatal("no events recorded")
	}
	if sink.Len() != store.Count() {
		t.Errorf("sink has %d events, store has %d", sink.Len(), store.Count())
	}
}

func TestSnapshotTracksCounters(t *testing.T) {
	e, world, _ := newTestEngine(Config{})
	world.AddMeteor(&sim.Meteor{
		Position: geo.Vec2{X: 445, Y: 300},
		Radius:   world.Params.MeteorRadius,
	})

	e.Tick()

	snap := e.Snapshot()
	if snap.Ticks != 1 {
		t.Errorf("ticks %d", snap.Ticks)
	}
	if snap.NearMisses == 0 {
		t.Error("snapshot missed the near miss")
	}
	if snap.Meteors != 1 {
		t.Errorf("meteors %d", snap.Meteors)
	}
}
