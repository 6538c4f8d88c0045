// Package audio synthesizes the background jingle and the sound effects and
// feeds them to a platform output.
package audio

import "github.com/tomz197/santavirus/internal/loop/sim"

// Output is what a frontend needs from the audio system.
// Implementations must not block the caller.
type Output interface {
	// SetMusic turns the background music on or off.
	SetMusic(on bool)
	// Music reports whether the music is switched on.
	Music() bool
	// Play starts the effect for a simulation event, if it has one.
	Play(kind sim.EventKind)
}

// Silent is an Output that makes no sound but remembers the music toggle,
// so the HUD can still show it.
type Silent struct {
	music bool
}

// NewSilent returns a silent output with music initially set to on.
func NewSilent(on bool) *Silent {
	return &Silent{music: on}
}

func (s *Silent) SetMusic(on bool)   { s.music = on }
func (s *Silent) Music() bool        { return s.music }
func (s *Silent) Play(sim.EventKind) {}

var (
	_ Output = (*Silent)(nil)
	_ Output = (*Engine)(nil)
)
