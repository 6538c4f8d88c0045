// Package object defines the game entities and their per-frame movement.
//
// Entities are plain records stored by value in typed slices owned by the
// simulation. Renderers only ever see copies of them.
package object

import "github.com/tomz197/santavirus/internal/physics"

// Rand is the random source entities draw from when spawning.
type Rand = physics.Rand

// Bounds is the logical playfield size.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the playfield.
func (b Bounds) Center() (float64, float64) {
	return b.Width / 2, b.Height / 2
}

// Contains reports whether (x, y) lies within the playfield grown by margin on every side.
func (b Bounds) Contains(x, y, margin float64) bool {
	return x >= -margin && y >= -margin && x <= b.Width+margin && y <= b.Height+margin
}

// ShouldRenderBlink returns true if an object with remaining protection/invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
