package sim

import "github.com/meteorwatch/simulator/internal/geo"

// Craft is the autonomously steered entity. One instance exists per run,
// created at the field center and mutated once per tick by Update.
type Craft struct {
	Position geo.Vec2
	Velocity geo.Vec2
	// Heading is the craft's facing in degrees, derived from velocity.
	// It keeps its last value while the craft is stationary.
	Heading float64
}

// NewCraft places a stationary craft at the field center.
func NewCraft(field Field) *Craft {
	return &Craft{Position: field.Center()}
}

// Update runs one tick of the steering model against the live meteor set:
// threat scan, avoidance or centering impulse, speed cap, heading update,
// position integration and bounds clamp.
//
// Avoidance and centering are mutually exclusive: centering only fires when
// no meteor is inside the detection radius. Impulses are additive, velocity
// carries over tick to tick.
func (c *Craft) Update(field Field, p Params, meteors []*Meteor) {
	var avoidance geo.Vec2
	inDanger := false

	for _, m := range meteors {
		d := c.Position.Distance(m.Position)
		if d < p.DetectionRadius && d > 0 {
			inDanger = true
			// unit vector pointing away from the threat
			avoidance = avoidance.Add(c.Position.Sub(m.Position).Scale(1 / d))
		}
	}

	// Opposing threats can cancel to a zero sum; in that case no impulse is
	// applied even though the craft is in danger. Intentional behavior of
	// the summation policy, do not "fix".
	if !avoidance.IsZero() {
		c.Velocity = c.Velocity.Add(avoidance.Normalize().Scale(p.AvoidanceStrength))
	}

	if !inDanger {
		toCenter := field.Center().Sub(c.Position).Normalize()
		c.Velocity = c.Velocity.Add(toCenter.Scale(p.CenteringStrength))
	}

	c.Velocity = c.Velocity.ClampLength(p.MaxSpeed)

	if !c.Velocity.IsZero() {
		c.Heading = c.Velocity.Heading()
	}

	c.Position = c.Position.Add(c.Velocity)
	c.Position = clampToField(c.Position, field, p.CraftHalfSize)
}

// clampToField keeps the point inside the field with the given margin.
func clampToField(pos geo.Vec2, field Field, margin float64) geo.Vec2 {
	return geo.Vec2{
		X: clamp(pos.X, margin, field.Width-margin),
		Y: clamp(pos.Y, margin, field.Height-margin),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
