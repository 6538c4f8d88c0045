package object

import (
	"math"

	"github.com/tomz197/santavirus/internal/loop/config"
)

// Bullet is a projectile fired by the player.
type Bullet struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Radius float64
	Life   float64 // Seconds remaining before removal
	Angle  float64 // Heading at launch
}

// NewBullet creates a bullet at (x, y) traveling along angle.
func NewBullet(x, y, angle float64) Bullet {
	return Bullet{
		X:      x,
		Y:      y,
		VX:     math.Cos(angle) * config.BulletSpeed,
		VY:     math.Sin(angle) * config.BulletSpeed,
		Radius: config.BulletRadius,
		Life:   config.BulletLifetime,
		Angle:  angle,
	}
}

// Update moves the bullet. Returns false once it has expired or left the
// playfield grown by the bounds slack.
func (b *Bullet) Update(bounds Bounds, dt float64) bool {
	b.Life -= dt
	b.X += b.VX * dt
	b.Y += b.VY * dt
	return b.Life > 0 && bounds.Contains(b.X, b.Y, config.BulletBoundsSlack)
}
