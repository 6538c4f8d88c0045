package object

import (
	"math"

	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/physics"
)

// Orb is a collectible pickup.
type Orb struct {
	X, Y   float64
	Radius float64
	Phase  float64 // Pulse animation phase
	Taken  bool    // Consumed this frame, swept at the end of it
}

// NewOrb creates an orb at (x, y) with a random animation phase.
func NewOrb(r Rand, x, y float64) Orb {
	return Orb{
		X:      x,
		Y:      y,
		Radius: config.OrbRadius,
		Phase:  physics.Range(r, 0, 2*math.Pi),
	}
}

// NewOrbRandom creates an orb at a random position inside b, away from the HUD strip.
func NewOrbRandom(r Rand, b Bounds) Orb {
	x := physics.Range(r, config.OrbMarginX, b.Width-config.OrbMarginX)
	y := physics.Range(r, config.OrbMarginTop, b.Height-config.OrbMarginBottom)
	return NewOrb(r, x, y)
}

// Animate advances the pulse phase.
func (o *Orb) Animate(dt float64) {
	o.Phase += dt * config.OrbPhaseRate
}

// Pulse returns the render scale for the orb radius.
func (o Orb) Pulse() float64 {
	return 1 + math.Sin(o.Phase)*0.12
}

// Touches reports whether a circle at (x, y) with radius r is close enough to collect the orb.
func (o Orb) Touches(x, y, r float64) bool {
	return physics.CirclesOverlap(o.X, o.Y, o.Radius+config.OrbPickupSlack, x, y, r)
}
