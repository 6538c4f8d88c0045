package sim

import (
	"slices"

	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/object"
)

// shoot fires the current weapon toward (tx, ty) if it has cooled down.
func (w *World) shoot(tx, ty float64) {
	bullets := w.player.Fire(tx, ty)
	if len(bullets) == 0 {
		return
	}
	w.bullets = append(w.bullets, bullets...)
	w.emit(EventShotFired, w.player.X, w.player.Y)
}

// collectOrbs picks up every orb the player touches, applies the unlocks
// that come with the new count, and sweeps the consumed orbs.
func (w *World) collectOrbs() {
	p := &w.player
	for i := range w.orbs {
		o := &w.orbs[i]
		if o.Taken || !o.Touches(p.X, p.Y, p.Radius) {
			continue
		}
		o.Taken = true
		w.pickups++
		w.emit(EventOrbCollected, o.X, o.Y)
		w.applyProgress()
	}

	w.orbs = slices.DeleteFunc(w.orbs, func(o object.Orb) bool { return o.Taken })
}

// applyProgress upgrades the weapon and opens the portal once their thresholds
// are reached. Both unlocks are one-shot and never revert during a run.
func (w *World) applyProgress() {
	if w.pickups == config.TripleShotOrbs && w.player.Tier != config.TierTriple {
		w.player.Tier = config.TierTriple
		w.emit(EventWeaponUpgraded, w.player.X, w.player.Y)
	}
	if w.pickups >= config.PortalOrbs && !w.portal.Active {
		w.portal.Active = true
		w.emit(EventPortalOpened, w.portal.X, w.portal.Y)
	}
}
