package sim

import (
	"github.com/meteorwatch/simulator/internal/rng"
)

// World is the explicit simulation context: the field, the tunables, the
// craft and the live meteor set. All mutation happens synchronously inside
// Step; nothing else writes to it.
type World struct {
	Field  Field
	Params Params
	Craft  *Craft

	meteors []*Meteor
	rnd     rng.Source
	tick    uint64
}

// NewWorld builds a world with a stationary craft at the field center and
// no meteors.
func NewWorld(field Field, params Params, rnd rng.Source) *World {
	return &World{
		Field:  field,
		Params: params,
		Craft:  NewCraft(field),
		rnd:    rnd,
	}
}

// Step advances the world by one tick: probabilistic spawn, meteor
// advancement, off-field culling, then the craft's steering update.
// Proximity scanning is the tracker's concern and runs after Step.
func (w *World) Step() {
	w.tick++

	if w.rnd.Float64() < w.Params.SpawnChance {
		w.meteors = append(w.meteors, SpawnMeteor(w.Field, w.Params.MeteorRadius, w.rnd))
	}

	// Advance and cull in one pass. A meteor advanced off the field this
	// tick is removed before the steering update and the proximity scan.
	live := w.meteors[:0]
	for _, m := range w.meteors {
		m.Advance()
		if !m.OffField(w.Field) {
			live = append(live, m)
		}
	}
	// release references past the new length
	for i := len(live); i < len(w.meteors); i++ {
		w.meteors[i] = nil
	}
	w.meteors = live

	w.Craft.Update(w.Field, w.Params, w.meteors)
}

// Meteors returns the live meteor set. Callers must not retain the slice
// across ticks.
func (w *World) Meteors() []*Meteor {
	return w.meteors
}

// AddMeteor inserts a meteor directly, bypassing the spawn roll. Used by
// scenario setup and tests.
func (w *World) AddMeteor(m *Meteor) {
	w.meteors = append(w.meteors, m)
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Score is the survival score: one point per ten ticks survived.
func (w *World) Score() uint64 {
	return w.tick / 10
}
