package sim

// EventKind identifies something noteworthy that happened during a step.
// Adapters (audio in particular) react to events; the simulation never waits on them.
type EventKind int

const (
	EventGameStarted EventKind = iota
	EventShotFired
	EventEnemySpawned
	EventEnemyHit
	EventEnemyKilled
	EventPlayerHurt
	EventOrbCollected
	EventWeaponUpgraded
	EventPortalOpened
	EventGameWon
	EventGameLost
)

func (k EventKind) String() string {
	switch k {
	case EventGameStarted:
		return "game_started"
	case EventShotFired:
		return "shot_fired"
	case EventEnemySpawned:
		return "enemy_spawned"
	case EventEnemyHit:
		return "enemy_hit"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerHurt:
		return "player_hurt"
	case EventOrbCollected:
		return "orb_collected"
	case EventWeaponUpgraded:
		return "weapon_upgraded"
	case EventPortalOpened:
		return "portal_opened"
	case EventGameWon:
		return "game_won"
	case EventGameLost:
		return "game_lost"
	default:
		return "unknown"
	}
}

// Event is a single occurrence with the position it happened at.
type Event struct {
	Kind EventKind
	X, Y float64
}

func (w *World) emit(kind EventKind, x, y float64) {
	w.events = append(w.events, Event{Kind: kind, X: x, Y: y})
}

// Events returns the events raised since the last call to Step began.
// The slice is reused by the next Step.
func (w *World) Events() []Event {
	return w.events
}
