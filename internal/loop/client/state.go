package client

import (
	"time"

	"github.com/tomz197/santavirus/internal/loop/sim"
	"github.com/tomz197/santavirus/internal/object"
)

// keyboardReach is how far ahead of the player the keyboard moves the pointer.
const keyboardReach = 120.0

// keyboardIdle is how far ahead of the player the pointer rests when no key is held.
// It sits inside the steering dead zone so the player coasts to a stop but keeps its aim.
const keyboardIdle = 4.0

// ClientState holds the per-connection state that lives outside the simulation.
type ClientState struct {
	Running bool // Client loop running

	Input sim.Input // Input handed to the simulation this frame

	// Pointer in playfield units, driven by the mouse or the keyboard
	pointerX, pointerY float64
	keyboardMode       bool    // Last pointer movement came from the keyboard
	aimX, aimY         float64 // Last keyboard direction
	mouseHeld          bool    // Left button state on the previous frame

	delta         time.Duration // Frame delta time
	prevGameState sim.GameState // For full clears on transitions
	wasInactive   bool
	isInactive    bool // Showing the inactivity warning
	shuttingDown  bool // Host is shutting down
	wasShutdown   bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
}

// NewClientState creates a new initialized client state with the pointer
// in the middle of the playfield.
func NewClientState(b object.Bounds) *ClientState {
	x, y := b.Center()
	return &ClientState{
		Running:       true,
		pointerX:      x,
		pointerY:      y,
		aimX:          1,
		prevGameState: -1,
	}
}
