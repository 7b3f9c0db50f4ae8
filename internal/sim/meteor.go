package sim

import (
	"math"

	"github.com/meteorwatch/simulator/internal/geo"
	"github.com/meteorwatch/simulator/internal/rng"
)

// Meteor drifts across the field in a straight line at constant velocity.
type Meteor struct {
	Position geo.Vec2
	Velocity geo.Vec2
	Radius   float64
}

// field edges a meteor can spawn on
const (
	edgeLeft = iota
	edgeRight
	edgeTop
	edgeBottom
	edgeCount
)

// SpawnMeteor creates a meteor on a uniformly chosen field edge. The
// coordinate along the edge is uniform over the edge's extent, the heading
// is uniform in [0, 2pi) and the speed is an integer in [1, 3].
func SpawnMeteor(field Field, radius float64, rnd rng.Source) *Meteor {
	var pos geo.Vec2
	switch rnd.Choice(edgeCount) {
	case edgeLeft:
		pos = geo.Vec2{X: 0, Y: rnd.Float64() * field.Height}
	case edgeRight:
		pos = geo.Vec2{X: field.Width, Y: rnd.Float64() * field.Height}
	case edgeTop:
		pos = geo.Vec2{X: rnd.Float64() * field.Width, Y: 0}
	default:
		pos = geo.Vec2{X: rnd.Float64() * field.Width, Y: field.Height}
	}

	angle := rnd.Float64() * 2 * math.Pi
	speed := float64(rnd.IntRange(1, 3))

	return &Meteor{
		Position: pos,
		Velocity: geo.FromAngle(angle, speed),
		Radius:   radius,
	}
}

// Advance integrates one tick of straight-line motion. Meteors are never
// clamped; leaving the field is how their life ends.
func (m *Meteor) Advance() {
	m.Position = m.Position.Add(m.Velocity)
}

// OffField reports whether the meteor has left the field by more than its
// own radius on any axis, which is the removal predicate.
func (m *Meteor) OffField(field Field) bool {
	return m.Position.X < -m.Radius || m.Position.X > field.Width+m.Radius ||
		m.Position.Y < -m.Radius || m.Position.Y > field.Height+m.Radius
}
