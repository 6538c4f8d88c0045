package sim

import (
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/object"
	"github.com/tomz197/santavirus/internal/physics"
)

// SpawnInterval returns the delay between enemy waves for a pickup count.
// It shrinks as the player progresses, from 1.15s down to 0.30s.
func SpawnInterval(pickups int) float64 {
	return physics.Clamp(
		config.SpawnIntervalBase-float64(pickups)*config.SpawnIntervalStep,
		config.SpawnIntervalMin,
		config.SpawnIntervalMax,
	)
}

// updateSpawner counts the enemy timer down and spawns a wave when it expires.
func (w *World) updateSpawner(dt float64) {
	w.spawnTimer -= dt
	if w.spawnTimer > 0 {
		return
	}

	w.spawnEnemy()
	if w.pickups >= config.DoubleSpawnAfter && physics.Chance(w.rng, config.DoubleSpawnChance) {
		w.spawnEnemy()
	}
	w.spawnTimer = SpawnInterval(w.pickups)
}

func (w *World) spawnEnemy() {
	e := object.NewEnemyAtEdge(w.rng, w.bounds)
	w.enemies = append(w.enemies, e)
	w.emit(EventEnemySpawned, e.X, e.Y)
}

// refillOrbs tops the orb store back up toward the on-screen minimum, one at a time.
func (w *World) refillOrbs() {
	if len(w.orbs) < config.MinOrbs && physics.Chance(w.rng, config.OrbRefillChance) {
		w.orbs = append(w.orbs, object.NewOrbRandom(w.rng, w.bounds))
	}
}

// dropOrb may leave an orb where an enemy died.
func (w *World) dropOrb(x, y float64) {
	if physics.Chance(w.rng, config.OrbDropChance) {
		w.orbs = append(w.orbs, object.NewOrb(w.rng, x, y))
	}
}

func (w *World) spawnFirework() {
	var burst object.Burst
	burst, w.sparks = object.SpawnFirework(w.rng, w.bounds, w.sparks)
	w.bursts = append(w.bursts, burst)
}
