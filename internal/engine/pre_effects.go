package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// healPerHealer is what each live HEAL_ALLIES Skull adds to the heal pool.
const healPerHealer = 5

// ResolveEnemyHealing runs the enemy pre-attack phase. With k live healers on
// the board, every live Skull (healers included) recovers min(deficit, 5k).
// The phase is skipped when no healer is alive.
func ResolveEnemyHealing(b game.Board) (game.Board, []string) {
	out := b.Clone()
	tl := newTurnLog()

	healers := 0
	forEachTile(out, func(_ game.Position, t *game.Tile) {
		if t.IsLiveSkull() && t.Enemy.HasTrait(game.TraitHealAllies) {
			healers++
		}
	})
	if healers == 0 {
		return out, tl.result()
	}

	pool := healPerHealer * healers
	total := 0
	forEachTile(out, func(_ game.Position, t *game.Tile) {
		if !t.IsLiveSkull() {
			return
		}
		amount := minInt(t.Enemy.MaxHP-t.Enemy.HP, pool)
		if amount > 0 {
			t.Enemy.HP += amount
			total += amount
		}
	})
	if total > 0 {
		tl.addf("Enemy shamans heal their allies for %d HP!", total)
	}
	return out, tl.result()
}
