package object

import (
	"math"

	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/physics"
)

// Snowflake is a background particle falling in every game state.
type Snowflake struct {
	X, Y   float64
	VY     float64 // Fall speed
	Radius float64
	Alpha  float64 // Opacity in [0, 1]
}

// NewSnowflake creates a flake anywhere in b.
func NewSnowflake(r Rand, b Bounds) Snowflake {
	return Snowflake{
		X:      r.Float64() * b.Width,
		Y:      r.Float64() * b.Height,
		VY:     physics.Range(r, config.SnowMinSpeed, config.SnowMaxSpeed),
		Radius: physics.Range(r, config.SnowMinRadius, config.SnowMaxRadius),
		Alpha:  physics.Range(r, config.SnowMinAlpha, config.SnowMaxAlpha),
	}
}

// Update makes the flake fall, wrapping it to the top at a new column
// once it leaves the bottom edge.
func (s *Snowflake) Update(r Rand, b Bounds, dt float64) {
	s.Y += s.VY * dt
	if s.Y > b.Height+config.SnowWrapMargin {
		s.Y = -config.SnowWrapMargin
		s.X = r.Float64() * b.Width
	}
}

// Tone is the colour family of a firework spark.
type Tone int

const (
	ToneCyan Tone = iota
	ToneViolet
)

// Spark is a single firework particle with gravity and drag.
type Spark struct {
	X, Y        float64
	VX, VY      float64
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Fade reference
	Size        float64
	Tone        Tone
}

// Update integrates the spark. Returns false once it has burnt out.
func (s *Spark) Update(dt float64) bool {
	s.Lifetime -= dt
	s.X += s.VX * dt
	s.Y += s.VY * dt
	s.VY += config.SparkGravity * dt

	drag := physics.Decay(config.SparkDrag, dt)
	s.VX *= drag
	s.VY *= drag

	return s.Lifetime > 0
}

// Alpha returns the spark opacity in [0, 1].
func (s Spark) Alpha() float64 {
	if s.MaxLifetime <= 0 {
		return 0
	}
	return physics.Clamp(s.Lifetime/s.MaxLifetime, 0, 1)
}

// Burst is the short flash at the center of a firework.
type Burst struct {
	X, Y     float64
	Lifetime float64
}

// Update counts the flash down. Returns false once it has faded.
func (f *Burst) Update(dt float64) bool {
	f.Lifetime -= dt
	return f.Lifetime > 0
}

// Alpha returns the flash opacity in [0, 1].
func (f Burst) Alpha() float64 {
	return math.Max(0, f.Lifetime/config.BurstLifetime)
}

// SpawnFirework creates a burst in the upper part of b and appends its sparks to sparks.
func SpawnFirework(r Rand, b Bounds, sparks []Spark) (Burst, []Spark) {
	x := physics.Range(r, b.Width*0.18, b.Width*0.82)
	y := physics.Range(r, b.Height*0.12, b.Height*0.45)

	for i := 0; i < config.BurstSparks; i++ {
		angle := physics.Range(r, 0, 2*math.Pi)
		speed := physics.Range(r, config.SparkMinSpeed, config.SparkMaxSpeed)
		sp := Spark{
			X:           x,
			Y:           y,
			VX:          math.Cos(angle) * speed,
			VY:          math.Sin(angle) * speed,
			Lifetime:    physics.Range(r, config.SparkMinLifetime, config.SparkMaxLifetime),
			MaxLifetime: 1,
			Size:        physics.Range(r, config.SparkMinSize, config.SparkMaxSize),
			Tone:        ToneCyan,
		}
		if !physics.Chance(r, 0.5) {
			sp.Tone = ToneViolet
		}
		sparks = append(sparks, sp)
	}

	return Burst{X: x, Y: y, Lifetime: config.BurstLifetime}, sparks
}
