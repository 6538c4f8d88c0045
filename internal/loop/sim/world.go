// Package sim is the single-player game simulation: one owned World aggregate
// advanced frame by frame by a host loop, with no rendering or device access.
package sim

import (
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/object"
	"github.com/tomz197/santavirus/internal/physics"
)

const winBursts = config.WinBursts

// Input is what the input adapters report for one frame.
// Coordinates are in playfield units.
type Input struct {
	PointerX, PointerY float64
	Fire               bool // Fire button held
	Start              bool // Start/restart trigger pressed this frame
}

// World holds every entity store, counter and timer of a run.
type World struct {
	bounds object.Bounds
	rng    physics.Rand
	state  GameState
	clock  float64 // Seconds simulated since creation

	player  object.Player
	enemies []object.Enemy
	bullets []object.Bullet
	orbs    []object.Orb
	portal  object.Portal
	snow    []object.Snowflake
	sparks  []object.Spark
	bursts  []object.Burst

	pickups    int
	spawnTimer float64
	loseReason string

	events []Event

	// Double-buffered snapshots so the previous one stays valid while the next is built
	snapshotBufs [2]Snapshot
	snapshotIdx  int
}

// New creates a world of the given size in the menu state.
// The world is fully populated so the menu can be drawn over a live scene.
func New(bounds object.Bounds, rng physics.Rand) *World {
	w := &World{
		bounds: bounds,
		rng:    rng,
		state:  StateMenu,
	}
	w.Reset()
	return w
}

// Reset reinitializes all entity stores, counters and timers without
// changing the game state.
func (w *World) Reset() {
	w.player = object.NewPlayer(w.bounds)
	w.enemies = w.enemies[:0]
	w.bullets = w.bullets[:0]
	w.orbs = w.orbs[:0]
	w.sparks = w.sparks[:0]
	w.bursts = w.bursts[:0]
	w.portal = object.NewPortal(w.bounds)

	w.pickups = 0
	w.spawnTimer = config.InitialSpawnDelay
	w.loseReason = ""

	w.snow = w.snow[:0]
	for i := 0; i < config.SnowCount; i++ {
		w.snow = append(w.snow, object.NewSnowflake(w.rng, w.bounds))
	}

	for i := 0; i < config.MinOrbs; i++ {
		w.orbs = append(w.orbs, object.NewOrbRandom(w.rng, w.bounds))
	}
}

// State returns the current game phase.
func (w *World) State() GameState {
	return w.state
}

// Bounds returns the playfield size.
func (w *World) Bounds() object.Bounds {
	return w.bounds
}

// Pickups returns the number of orbs collected this run.
func (w *World) Pickups() int {
	return w.pickups
}

// Player returns a copy of the player.
func (w *World) Player() object.Player {
	return w.player
}

// Snapshot is a read-only copy of the world handed to renderers.
type Snapshot struct {
	State      GameState
	Bounds     object.Bounds
	Clock      float64
	Player     object.Player
	Enemies    []object.Enemy
	Bullets    []object.Bullet
	Orbs       []object.Orb
	Portal     object.Portal
	Snow       []object.Snowflake
	Sparks     []object.Spark
	Bursts     []object.Burst
	Pickups    int
	LoseReason string
}

// Snapshot copies the world into one of two reusable buffers.
// The returned snapshot stays valid until the second following call.
func (w *World) Snapshot() *Snapshot {
	s := &w.snapshotBufs[w.snapshotIdx]
	w.snapshotIdx = 1 - w.snapshotIdx

	s.State = w.state
	s.Bounds = w.bounds
	s.Clock = w.clock
	s.Player = w.player
	s.Enemies = append(s.Enemies[:0], w.enemies...)
	s.Bullets = append(s.Bullets[:0], w.bullets...)
	s.Orbs = append(s.Orbs[:0], w.orbs...)
	s.Portal = w.portal
	s.Snow = append(s.Snow[:0], w.snow...)
	s.Sparks = append(s.Sparks[:0], w.sparks...)
	s.Bursts = append(s.Bursts[:0], w.bursts...)
	s.Pickups = w.pickups
	s.LoseReason = w.loseReason
	return s
}

// WeaponName describes the current weapon tier for the HUD.
func (s *Snapshot) WeaponName() string {
	if s.Player.Tier == config.TierTriple {
		return "TRIPLE SHOT"
	}
	return "SINGLE SHOT"
}

// Objective returns the HUD hint for the next goal.
func (s *Snapshot) Objective() string {
	switch {
	case s.Portal.Active:
		return "PORTAL OPEN! Enter the portal to deliver the gift!"
	case s.Pickups < config.TripleShotOrbs:
		return "Goal: collect 3 orbs to unlock the TRIPLE SHOT."
	default:
		return "Goal: collect 15 orbs to open the PORTAL."
	}
}
