// Package analytics accumulates near-miss events over a run and turns them
// into the end-of-run report.
package analytics

import (
	"github.com/meteorwatch/simulator/pkg/core"
)

// Store collects near-miss events in arrival order. It is not safe for
// concurrent use; the engine records from a single goroutine.
type Store struct {
	criticalThreshold float64

	events     []core.NearMissEvent
	endElapsed float64
	finalized  bool
}

// NewStore returns an empty store. criticalThreshold is the distance below
// which a recorded event reports as CRITICAL.
func NewStore(criticalThreshold float64) *Store {
	return &Store{criticalThreshold: criticalThreshold}
}

// Record appends an event. Events are kept in the order they arrive; nothing
// is deduplicated or dropped.
func (s *Store) Record(e core.NearMissEvent) {
	s.events = append(s.events, e)
}

// Count returns the number of events recorded so far.
func (s *Store) Count() int {
	return len(s.events)
}

// Events returns the recorded events in arrival order. The slice is shared
// with the store; callers must not mutate it.
func (s *Store) Events() []core.NearMissEvent {
	return s.events
}

// Finalize freezes the run duration. The first call wins; later calls are
// ignored so a collision and a clean shutdown cannot both move the end time.
func (s *Store) Finalize(elapsed float64) {
	if s.finalized {
		return
	}
	s.endElapsed = elapsed
	s.finalized = true
}

// Finalized reports whether the run duration has been frozen.
func (s *Store) Finalized() bool {
	return s.finalized
}

// Runtime returns the frozen run duration in seconds, or zero if the store
// has not been finalized.
func (s *Store) Runtime() float64 {
	return s.endElapsed
}

// BuildReport assembles the report from the recorded events. It does not
// mutate the store, so repeated calls yield identical reports.
func (s *Store) BuildReport() core.Report {
	report := core.Report{
		TotalRuntime:    s.endElapsed,
		TotalNearMisses: len(s.events),
		NearMisses:      make([]core.ReportEvent, 0, len(s.events)),
	}
	for _, e := range s.events {
		report.NearMisses = append(report.NearMisses, core.ReportEvent{
			Timestamp:      e.Timestamp,
			Distance:       e.Distance,
			ShipPosition:   e.ShipPosition,
			MeteorPosition: e.MeteorPosition,
			ShipVelocity:   e.ShipVelocity,
			MeteorVelocity: e.MeteorVelocity,
			Severity:       core.ClassifySeverity(e.Distance, s.criticalThreshold),
		})
	}
	return report
}
