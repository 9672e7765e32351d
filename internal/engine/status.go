package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// TickStatus applies end-of-turn upkeep: poison deals its stack count then
// decays by one, ability cooldowns drop by one, and buffs lose a turn and
// expire at zero.
func TickStatus(stats game.PlayerStats) (game.PlayerStats, []string) {
	out := stats.Clone()
	tl := newTurnLog()

	if out.PoisonStacks > 0 {
		out.HP -= out.PoisonStacks
		tl.addf("You take %d damage from poison.", out.PoisonStacks)
		out.PoisonStacks = maxInt(0, out.PoisonStacks-1)
	}

	for i := range out.Abilities {
		out.Abilities[i].Cooldown = maxInt(0, out.Abilities[i].Cooldown-1)
	}

	buffs := make([]game.Buff, 0, len(out.Buffs))
	for _, b := range out.Buffs {
		b.TurnsRemaining--
		if b.TurnsRemaining > 0 {
			buffs = append(buffs, b)
		}
	}
	out.Buffs = buffs
	return out, tl.result()
}
