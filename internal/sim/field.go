// Package sim implements the simulation core: the autonomously steered
// craft, the meteor field it crosses, and the per-tick world update.
package sim

import "github.com/meteorwatch/simulator/internal/geo"

// Field is the rectangular simulation surface, in pixels.
// Screen coordinates: the origin is the top-left corner, y grows down.
type Field struct {
	Width  float64
	Height float64
}

// Center returns the midpoint of the field.
func (f Field) Center() geo.Vec2 {
	return geo.Vec2{X: f.Width / 2, Y: f.Height / 2}
}

// Params holds the steering and lifecycle tunables for a run.
type Params struct {
	// CraftHalfSize is half the craft's sprite edge; also its collision radius.
	CraftHalfSize float64
	// MeteorRadius is shared by all meteors.
	MeteorRadius float64
	// MaxSpeed caps the craft's velocity magnitude.
	MaxSpeed float64
	// DetectionRadius is the threat-scan range of the autopilot.
	DetectionRadius float64
	// AvoidanceStrength scales the per-tick impulse away from threats.
	AvoidanceStrength float64
	// CenteringStrength scales the idle drift toward the field center.
	CenteringStrength float64
	// SpawnChance is the per-tick Bernoulli probability of a new meteor.
	SpawnChance float64
}

// DefaultField is the standard 800x600 surface.
func DefaultField() Field {
	return Field{Width: 800, Height: 600}
}

// DefaultParams are the tunables the steering model was calibrated with.
func DefaultParams() Params {
	return Params{
		CraftHalfSize:     10,
		MeteorRadius:      25,
		MaxSpeed:          5,
		DetectionRadius:   110,
		AvoidanceStrength: 0.5,
		CenteringStrength: 0.1,
		SpawnChance:       0.05,
	}
}
