// Package tracker scans the field once per tick and classifies close passes
// between the craft and the live meteors.
package tracker

import (
	"github.com/meteorwatch/simulator/internal/sim"
	"github.com/meteorwatch/simulator/pkg/core"
)

// Default thresholds, in pixels.
const (
	DefaultDangerThreshold   = 50
	DefaultCriticalThreshold = 35
)

// Tracker holds the classification thresholds for a run.
type Tracker struct {
	// DangerThreshold is the separation below which a pass counts as a
	// near miss.
	DangerThreshold float64
	// CriticalThreshold separates CRITICAL from WARNING near misses.
	CriticalThreshold float64
	// CollisionRadius is the sum of the craft's and a meteor's collision
	// radii; separations at or below it are terminal.
	CollisionRadius float64
}

// New builds a tracker for the given steering parameters using the default
// thresholds.
func New(p sim.Params) *Tracker {
	return &Tracker{
		DangerThreshold:   DefaultDangerThreshold,
		CriticalThreshold: DefaultCriticalThreshold,
		CollisionRadius:   p.CraftHalfSize + p.MeteorRadius,
	}
}

// Scan inspects every live meteor exactly once. It returns one NearMissEvent
// per meteor whose separation lies strictly between the collision radius and
// the danger threshold, and reports whether any meteor is in terminal
// contact (separation at or below the collision radius).
//
// elapsed is the simulation time in seconds since tracking began; it is
// stamped onto every event emitted this tick.
func (t *Tracker) Scan(craft *sim.Craft, meteors []*sim.Meteor, elapsed float64) (events []core.NearMissEvent, collided bool) {
	for _, m := range meteors {
		d := craft.Position.Distance(m.Position)

		if d <= t.CollisionRadius {
			collided = true
			continue
		}
		if d < t.DangerThreshold {
			events = append(events, core.NearMissEvent{
				Timestamp:      elapsed,
				Distance:       d,
				ShipPosition:   core.XY{X: craft.Position.X, Y: craft.Position.Y},
				MeteorPosition: core.XY{X: m.Position.X, Y: m.Position.Y},
				ShipVelocity:   core.XY{X: craft.Velocity.X, Y: craft.Velocity.Y},
				MeteorVelocity: core.XY{X: m.Velocity.X, Y: m.Velocity.Y},
			})
		}
	}
	return events, collided
}

// Classify derives the severity for a near-miss distance.
func (t *Tracker) Classify(distance float64) core.Severity {
	return core.ClassifySeverity(distance, t.CriticalThreshold)
}
