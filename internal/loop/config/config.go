// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - the logical coordinate space of the simulation.
// Renderers scale it to the terminal or window size.
const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// Frame timing
const (
	MaxFrameDelta   = 0.033 // Seconds; larger steps are clamped
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Player
const (
	PlayerRadius        = 20.0
	PlayerHP            = 5
	PlayerAccel         = 520.0 // Units/s² toward the pointer
	PlayerMaxSpeed      = 260.0
	PlayerDamping       = 0.90 // Per-frame factor at 60 fps
	PlayerDeadZone      = 6.0  // No steering closer than this to the pointer
	PlayerEdgeMargin    = 10.0 // Clamp inset beyond the radius
	PlayerSpawnX        = 0.45 // Fraction of width
	PlayerSpawnY        = 0.55 // Fraction of height
	InvulnerableSeconds = 1.0
	KnockbackImpulse    = 220.0
	PlayerBlinkRate     = 20.0 // Hz, render-side
)

// Weapons
const (
	TierSingle        = 1
	TierTriple        = 3
	SingleCooldown    = 0.14
	TripleCooldown    = 0.22
	TripleSpread      = 0.18 // Radians either side of the aim line
	BulletSpeed       = 560.0
	BulletRadius      = 4.6
	BulletLifetime    = 0.9
	BulletBoundsSlack = 20.0
)

// Enemies
const (
	EnemyHP              = 2
	EnemyMinRadius       = 12.0
	EnemyMaxRadius       = 18.0
	EnemyMinSpeed        = 70.0
	EnemyMaxSpeed        = 125.0
	EnemyEdgeMargin      = 30.0
	EnemyWobbleRate      = 3.2  // Radians/s
	EnemyWobbleAmplitude = 0.18 // Multiplied by EnemyWobbleScale
	EnemyWobbleScale     = 30.0
)

// Spawning
const (
	InitialSpawnDelay = 0.8
	SpawnIntervalBase = 1.15
	SpawnIntervalStep = 0.03 // Seconds removed per pickup
	SpawnIntervalMin  = 0.30
	SpawnIntervalMax  = 1.15
	DoubleSpawnAfter  = 8 // Pickups before double spawns can happen
	DoubleSpawnChance = 0.35
	MinOrbs           = 7
	OrbRefillChance   = 0.35
	OrbDropChance     = 0.65
)

// Pickups and progression
const (
	OrbRadius       = 10.0
	OrbPickupSlack  = 6.0
	OrbPhaseRate    = 2.0
	OrbMarginX      = 40.0
	OrbMarginTop    = 100.0 // Keeps orbs clear of the HUD
	OrbMarginBottom = 40.0
	TripleShotOrbs  = 3
	PortalOrbs      = 15
	PortalRadius    = 44.0
	PortalX         = 0.85
	PortalY         = 0.5
)

// Ambient particles
const (
	SnowCount        = 170
	SnowMinSpeed     = 30.0
	SnowMaxSpeed     = 140.0
	SnowMinRadius    = 1.0
	SnowMaxRadius    = 2.6
	SnowMinAlpha     = 0.25
	SnowMaxAlpha     = 0.95
	SnowWrapMargin   = 6.0
	WinBursts        = 3
	WinBurstChance   = 0.12 // Per frame while in the win state
	BurstLifetime    = 0.25
	BurstSparks      = 95
	SparkMinSpeed    = 90.0
	SparkMaxSpeed    = 340.0
	SparkMinLifetime = 0.9
	SparkMaxLifetime = 1.8
	SparkMinSize     = 1.5
	SparkMaxSize     = 3.6
	SparkGravity     = 90.0
	SparkDrag        = 0.986
)

// LoseReason is shown on the game over screen when the player runs out of hit points.
const LoseReason = "The viruses took over. Santa couldn't deliver the gift."

// Terminal rendering
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
