package object

import (
	"math"

	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/physics"
)

// Player is Santa, steered toward the pointer.
type Player struct {
	X, Y   float64 // Position (center)
	VX, VY float64 // Velocity
	Radius float64

	HP           int
	Invulnerable float64 // Seconds of damage immunity remaining

	Accel    float64 // Acceleration toward the pointer
	MaxSpeed float64 // Maximum velocity magnitude

	Tier     int     // Weapon tier: config.TierSingle or config.TierTriple
	Cooldown float64 // Seconds until the next shot is allowed
}

// NewPlayer creates a player at its spawn point inside b.
func NewPlayer(b Bounds) Player {
	return Player{
		X:        b.Width * config.PlayerSpawnX,
		Y:        b.Height * config.PlayerSpawnY,
		Radius:   config.PlayerRadius,
		HP:       config.PlayerHP,
		Accel:    config.PlayerAccel,
		MaxSpeed: config.PlayerMaxSpeed,
		Tier:     config.TierSingle,
	}
}

// Tick counts down the invulnerability and weapon timers.
func (p *Player) Tick(dt float64) {
	if p.Invulnerable > 0 {
		p.Invulnerable -= dt
	}
	if p.Cooldown > 0 {
		p.Cooldown -= dt
	}
}

// Steer accelerates toward (tx, ty), caps the speed and applies damping.
func (p *Player) Steer(tx, ty, dt float64) {
	ux, uy, d := physics.Unit(tx-p.X, ty-p.Y)
	if d > config.PlayerDeadZone {
		p.VX += ux * p.Accel * dt
		p.VY += uy * p.Accel * dt
	}

	speed := math.Hypot(p.VX, p.VY)
	if speed > p.MaxSpeed {
		p.VX = p.VX / speed * p.MaxSpeed
		p.VY = p.VY / speed * p.MaxSpeed
	}

	damping := physics.Decay(config.PlayerDamping, dt)
	p.VX *= damping
	p.VY *= damping
}

// Move applies velocity and keeps the player inside b.
func (p *Player) Move(b Bounds, dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt

	inset := p.Radius + config.PlayerEdgeMargin
	p.X = physics.Clamp(p.X, inset, b.Width-inset)
	p.Y = physics.Clamp(p.Y, inset, b.Height-inset)
}

// Hurt applies one point of contact damage unless the player is invulnerable.
// (ux, uy) is the enemy's approach direction (enemy toward player); the knockback
// impulse is applied opposite to it. Returns true if damage was applied.
func (p *Player) Hurt(ux, uy float64) bool {
	if p.Invulnerable > 0 || p.HP <= 0 {
		return false
	}
	p.HP--
	p.Invulnerable = config.InvulnerableSeconds
	p.VX -= ux * config.KnockbackImpulse
	p.VY -= uy * config.KnockbackImpulse
	return true
}

// Dead reports whether the player has no hit points left.
func (p *Player) Dead() bool {
	return p.HP <= 0
}

// Fire shoots toward (tx, ty) if the weapon has cooled down.
// Returns the bullets created, or nil while cooling down.
func (p *Player) Fire(tx, ty float64) []Bullet {
	if p.Cooldown > 0 {
		return nil
	}

	ux, uy, _ := physics.Unit(tx-p.X, ty-p.Y)
	aim := math.Atan2(uy, ux)

	if p.Tier == config.TierTriple {
		p.Cooldown = config.TripleCooldown
		return []Bullet{
			NewBullet(p.X, p.Y, aim),
			NewBullet(p.X, p.Y, aim+config.TripleSpread),
			NewBullet(p.X, p.Y, aim-config.TripleSpread),
		}
	}

	p.Cooldown = config.SingleCooldown
	return []Bullet{NewBullet(p.X, p.Y, aim)}
}
