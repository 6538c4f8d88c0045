// Package physics provides the scalar and vector helpers shared by the simulation:
// distances, circle tests, clamping and random ranges.
package physics

import "math"

// Rand is the random source used by the simulation.
// *math/rand.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Range returns a uniformly distributed value in [lo, hi).
func Range(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Unit returns the unit vector pointing along (dx, dy) and its length.
// A zero-length vector is divided by 1 instead, yielding (0, 0).
func Unit(dx, dy float64) (ux, uy, length float64) {
	length = math.Hypot(dx, dy)
	d := length
	if d == 0 {
		d = 1
	}
	return dx / d, dy / d, length
}

// CirclesOverlap checks if two circles overlap (strictly closer than the sum of radii).
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Decay returns the frame-rate independent damping multiplier for a per-frame
// factor tuned at 60 frames per second.
func Decay(factor, dt float64) float64 {
	return math.Pow(factor, dt*60)
}
