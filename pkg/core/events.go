// pkg/core/events.go
package core

import "time"

// NearMissEvent records a single close pass between the craft and a meteor.
// All fields are value copies taken at detection time; the record is never
// mutated after creation. Severity is not stored, it is derived from
// Distance when a report is built.
type NearMissEvent struct {
	Timestamp      float64 // elapsed simulation seconds since tracking began
	Distance       float64 // separation between craft and meteor centers
	ShipPosition   XY
	MeteorPosition XY
	ShipVelocity   XY
	MeteorVelocity XY
}

// Run identifies a single simulation run.
type Run struct {
	ID        uint
	Name      string
	Seed      int64
	StartTime time.Time
}

// RunResult summarizes a finished run.
type RunResult struct {
	EndTime      time.Time
	Ticks        uint64
	Score        uint64 // ticks survived / 10
	Collided     bool
	TotalRuntime float64 // elapsed simulation seconds
	NearMisses   int
}
