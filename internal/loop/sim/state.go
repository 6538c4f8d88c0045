package sim

// GameState represents the current game phase.
type GameState int

const (
	StateMenu    GameState = iota // Title screen
	StatePlaying                  // Active gameplay
	StateWin                      // Portal reached, fireworks
	StateLose                     // Out of hit points
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateWin:
		return "win"
	case StateLose:
		return "lose"
	default:
		return "unknown"
	}
}

// Start handles the start/restart trigger. It only has an effect from the
// menu, win and lose states, where it resets the world and begins a new run.
// Returns true if a new run started.
func (w *World) Start() bool {
	if w.state == StatePlaying {
		return false
	}
	w.Reset()
	w.state = StatePlaying
	w.emit(EventGameStarted, w.player.X, w.player.Y)
	return true
}

// win ends the run successfully and sets off the celebration.
func (w *World) win() {
	w.state = StateWin
	for i := 0; i < winBursts; i++ {
		w.spawnFirework()
	}
	w.emit(EventGameWon, w.portal.X, w.portal.Y)
}

// lose ends the run, remembering why.
func (w *World) lose(reason string) {
	w.state = StateLose
	w.loseReason = reason
	w.emit(EventGameLost, w.player.X, w.player.Y)
}
