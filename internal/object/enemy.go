package object

import (
	"math"

	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/physics"
)

// Edge identifies the playfield side an enemy enters from.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Enemy is a virus homing in on the player.
type Enemy struct {
	X, Y   float64 // Position (center)
	Radius float64
	Speed  float64
	HP     int
	Wobble float64 // Oscillation phase in radians
}

// NewEnemyAtEdge creates an enemy just outside a random edge of b.
func NewEnemyAtEdge(r Rand, b Bounds) Enemy {
	var x, y float64
	m := config.EnemyEdgeMargin

	switch Edge(r.Intn(4)) {
	case EdgeLeft:
		x, y = -m, physics.Range(r, 0, b.Height)
	case EdgeRight:
		x, y = b.Width+m, physics.Range(r, 0, b.Height)
	case EdgeTop:
		x, y = physics.Range(r, 0, b.Width), -m
	case EdgeBottom:
		x, y = physics.Range(r, 0, b.Width), b.Height+m
	}

	return Enemy{
		X:      x,
		Y:      y,
		Radius: physics.Range(r, config.EnemyMinRadius, config.EnemyMaxRadius),
		Speed:  physics.Range(r, config.EnemyMinSpeed, config.EnemyMaxSpeed),
		HP:     config.EnemyHP,
		Wobble: physics.Range(r, 0, 2*math.Pi),
	}
}

// Seek moves the enemy toward (tx, ty) with a sideways wobble.
// Returns the unit vector from the enemy to the target before the move.
func (e *Enemy) Seek(tx, ty, dt float64) (ux, uy float64) {
	e.Wobble += dt * config.EnemyWobbleRate
	wob := math.Sin(e.Wobble) * config.EnemyWobbleAmplitude * config.EnemyWobbleScale

	ux, uy, _ = physics.Unit(tx-e.X, ty-e.Y)

	e.X += (ux*e.Speed - uy*wob) * dt
	e.Y += (uy*e.Speed + ux*wob) * dt
	return ux, uy
}

// Hit applies one point of bullet damage. Returns true if the enemy died.
func (e *Enemy) Hit() bool {
	if e.HP > 0 {
		e.HP--
	}
	return e.HP <= 0
}
