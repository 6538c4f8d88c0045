package sim

import (
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/physics"
)

// Step advances the world by dt seconds. dt is clamped to config.MaxFrameDelta
// so a stalled host cannot destabilize the integration.
//
// Ambient particles move in every state; gameplay only runs while playing.
func (w *World) Step(dt float64, in Input) {
	dt = physics.Clamp(dt, 0, config.MaxFrameDelta)
	w.events = w.events[:0]
	w.clock += dt

	if in.Start && w.Start() {
		// The press that starts a run does not also fire
		in.Fire = false
	}

	w.updateAmbient(dt)

	switch w.state {
	case StateWin:
		if physics.Chance(w.rng, config.WinBurstChance) {
			w.spawnFirework()
		}
	case StatePlaying:
		w.updatePlaying(dt, in)
	}
}

// updatePlaying runs one gameplay frame: player, spawner, bullets, enemies,
// pickups, then the portal check.
func (w *World) updatePlaying(dt float64, in Input) {
	p := &w.player
	p.Tick(dt)
	p.Steer(in.PointerX, in.PointerY, dt)
	p.Move(w.bounds, dt)

	if in.Fire {
		w.shoot(in.PointerX, in.PointerY)
	}

	w.updateSpawner(dt)

	for i := range w.orbs {
		w.orbs[i].Animate(dt)
	}

	w.updateBullets(dt)

	if w.resolveEnemies(dt) {
		return
	}

	w.collectOrbs()
	w.refillOrbs()

	if w.portal.Captures(p.X, p.Y, p.Radius) {
		w.win()
	}
}

// updateAmbient moves snow and firework particles.
func (w *World) updateAmbient(dt float64) {
	for i := range w.snow {
		w.snow[i].Update(w.rng, w.bounds, dt)
	}

	kept := w.bursts[:0]
	for _, b := range w.bursts {
		if b.Update(dt) {
			kept = append(kept, b)
		}
	}
	w.bursts = kept

	sparks := w.sparks[:0]
	for _, s := range w.sparks {
		if s.Update(dt) {
			sparks = append(sparks, s)
		}
	}
	w.sparks = sparks
}

// updateBullets moves bullets and drops the expired ones.
func (w *World) updateBullets(dt float64) {
	kept := w.bullets[:0]
	for _, b := range w.bullets {
		if b.Update(w.bounds, dt) {
			kept = append(kept, b)
		}
	}
	w.bullets = kept
}
