package physics

import (
	"math"
	"testing"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }
func (f fixedRand) Intn(n int) int   { return int(float64(f) * float64(n)) }

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-2, 0, 1, 0},
		{7, 0, 1, 1},
		{1.15, 0.30, 1.15, 1.15},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRange(t *testing.T) {
	if got := Range(fixedRand(0), 12, 18); got != 12 {
		t.Fatalf("Range at 0 = %v, want 12", got)
	}
	if got := Range(fixedRand(0.5), 12, 18); got != 15 {
		t.Fatalf("Range at 0.5 = %v, want 15", got)
	}
}

func TestChance(t *testing.T) {
	if !Chance(fixedRand(0.34), 0.35) {
		t.Fatal("0.34 < 0.35 should succeed")
	}
	if Chance(fixedRand(0.35), 0.35) {
		t.Fatal("0.35 < 0.35 should fail")
	}
}

func TestUnitZeroLength(t *testing.T) {
	ux, uy, l := Unit(0, 0)
	if ux != 0 || uy != 0 || l != 0 {
		t.Fatalf("Unit(0,0) = (%v, %v, %v), want zeros", ux, uy, l)
	}
	ux, uy, l = Unit(3, 4)
	if l != 5 || math.Abs(ux-0.6) > 1e-12 || math.Abs(uy-0.8) > 1e-12 {
		t.Fatalf("Unit(3,4) = (%v, %v, %v)", ux, uy, l)
	}
}

func TestCirclesOverlapIsStrict(t *testing.T) {
	if CirclesOverlap(0, 0, 1, 2, 0, 1) {
		t.Fatal("touching circles should not overlap")
	}
	if !CirclesOverlap(0, 0, 1, 1.9, 0, 1) {
		t.Fatal("intersecting circles should overlap")
	}
}

func TestDecayIsFrameRateIndependent(t *testing.T) {
	oneStep := Decay(0.9, 1.0/30)
	twoSteps := Decay(0.9, 1.0/60) * Decay(0.9, 1.0/60)
	if math.Abs(oneStep-twoSteps) > 1e-12 {
		t.Fatalf("decay over 1/30s = %v, two 1/60s steps = %v", oneStep, twoSteps)
	}
}
