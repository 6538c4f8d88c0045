package object

import (
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/physics"
)

// Portal is the exit zone; it opens once enough orbs are collected.
type Portal struct {
	X, Y   float64
	Radius float64
	Active bool
}

// NewPortal places an inactive portal at its fixed spot inside b.
func NewPortal(b Bounds) Portal {
	return Portal{
		X:      b.Width * config.PortalX,
		Y:      b.Height * config.PortalY,
		Radius: config.PortalRadius,
	}
}

// Captures reports whether an active portal swallows a circle at (x, y) with radius r.
func (p Portal) Captures(x, y, r float64) bool {
	return p.Active && physics.CirclesOverlap(p.X, p.Y, p.Radius, x, y, r)
}
