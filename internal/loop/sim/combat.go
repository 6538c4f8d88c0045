package sim

import (
	"slices"

	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/physics"
)

// resolveEnemies moves every enemy, then resolves its bullet hits and its
// contact with the player. Returns true if the player died, in which case the
// remaining enemies are left untouched for this frame.
//
// Enemies and bullets are scanned newest first. Each enemy takes at most one
// bullet per frame: the first overlapping bullet found wins and any other
// overlapping bullets fly on.
func (w *World) resolveEnemies(dt float64) bool {
	p := &w.player

	for i := len(w.enemies) - 1; i >= 0; i-- {
		e := &w.enemies[i]
		ux, uy := e.Seek(p.X, p.Y, dt)

		killed := false
		for j := len(w.bullets) - 1; j >= 0; j-- {
			b := w.bullets[j]
			if !physics.CirclesOverlap(b.X, b.Y, b.Radius, e.X, e.Y, e.Radius) {
				continue
			}
			w.bullets = slices.Delete(w.bullets, j, j+1)
			if e.Hit() {
				killed = true
			} else {
				w.emit(EventEnemyHit, e.X, e.Y)
			}
			break
		}

		if killed {
			x, y := e.X, e.Y
			w.enemies = slices.Delete(w.enemies, i, i+1)
			w.emit(EventEnemyKilled, x, y)
			w.dropOrb(x, y)
			continue
		}

		if !physics.CirclesOverlap(e.X, e.Y, e.Radius, p.X, p.Y, p.Radius) {
			continue
		}
		if !p.Hurt(ux, uy) {
			continue
		}
		w.emit(EventPlayerHurt, p.X, p.Y)
		if p.Dead() {
			w.lose(config.LoseReason)
			return true
		}
	}

	return false
}
