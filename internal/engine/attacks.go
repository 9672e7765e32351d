package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// Defeat records an enemy killed this turn and the rewards credited for it.
type Defeat struct {
	Position game.Position `json:"position"`
	EnemyID  string        `json:"enemy_id"`
	Name     string        `json:"name"`
	Gold     int           `json:"gold"`
	XP       int           `json:"xp"`
}

// PathEffectResult is the state after the path effect phase.
type PathEffectResult struct {
	Board    game.Board
	Stats    game.PlayerStats
	Log      []string
	Type     game.TileType
	Value    int
	Bonus    float64
	Defeated []Defeat
}

// ResolvePathEffect applies the effect of the committed path. Attack paths
// damage every live Skull they cross and credit rewards for kills; Shield,
// Potion and Coin paths restore armor, heal, and collect gold. A matching
// double_attack/double_gold buff is consumed (one instance).
func ResolvePathEffect(b game.Board, base game.PlayerStats, eff game.EffectiveStats, path []game.Position, cfg *game.GameConfig) PathEffectResult {
	out := PathEffectResult{Board: b.Clone(), Stats: base.Clone()}
	tl := newTurnLog()
	if len(path) == 0 {
		out.Log = tl.result()
		return out
	}
	first := out.Board.At(path[0])
	if first == nil {
		out.Log = tl.result()
		return out
	}
	out.Type = first.Type
	n := len(path)
	out.Value, out.Bonus = pathEffectValue(first.Type, n, eff, cfg)

	switch {
	case first.Type.IsAttack():
		if eff.HasBuff(game.BuffDoubleAttack) {
			tl.add("BERSERK! Attack is doubled!")
			out.Stats.Buffs = consumeBuff(out.Stats.Buffs, game.BuffDoubleAttack)
		}
		tl.addf("You attack for %d total damage.", out.Value)
		out.Defeated = applyPathDamage(out.Board, path, out.Value, cfg, tl)
		for _, d := range out.Defeated {
			out.Stats.Gold += d.Gold
			out.Stats.XP += d.XP
		}
	case first.Type == game.TileShield:
		out.Stats.Armor = minInt(eff.MaxArmor, out.Stats.Armor+out.Value)
		tl.addf("You repaired %d armor.", out.Value)
	case first.Type == game.TilePotion:
		out.Stats.HP = minInt(eff.MaxHP, out.Stats.HP+out.Value)
		tl.addf("You healed for %d HP.", out.Value)
	case first.Type == game.TileCoin:
		if eff.HasBuff(game.BuffDoubleGold) {
			tl.add("GOLD RUSH! Coins are doubled!")
			out.Stats.Buffs = consumeBuff(out.Stats.Buffs, game.BuffDoubleGold)
		}
		out.Stats.Gold += out.Value
		tl.addf("You collected %d gold.", out.Value)
	}
	out.Log = tl.result()
	return out
}

// applyPathDamage damages the live Skulls of path in place on board (a
// private copy) and returns the kills with their rewards.
func applyPathDamage(board game.Board, path []game.Position, damage int, cfg *game.GameConfig, tl *turnLog) []Defeat {
	var defeated []Defeat
	for _, p := range path {
		t := board.At(p)
		if !t.IsLiveSkull() {
			continue
		}
		t.Enemy.HP -= damage
		if t.Enemy.HP > 0 {
			tl.addf("%s takes %d damage.", t.Enemy.Name, damage)
			continue
		}
		d := Defeat{Position: p, EnemyID: t.Enemy.EnemyID, Name: t.Enemy.Name}
		if def, ok := cfg.Enemy(t.Enemy.EnemyID); ok {
			d.Gold = def.GoldReward
			d.XP = def.XPReward
		}
		tl.addf("You defeated a %s! (+%dG, +%dXP)", d.Name, d.Gold, d.XP)
		defeated = append(defeated, d)
	}
	return defeated
}

// ResolveEnemyAttacks lets every live Skull outside the path strike the
// player. Armor-piercing hits go straight to HP; the rest are reduced by the
// effective armor (minimum 1 each) and land on armor first, then HP. Each
// poisonous attacker adds one poison stack.
func ResolveEnemyAttacks(b game.Board, stats game.PlayerStats, eff game.EffectiveStats, path []game.Position) (game.PlayerStats, []string) {
	out := stats.Clone()
	tl := newTurnLog()
	inPath := newPositionSet(path)
	normal, piercing := 0, 0

	forEachTile(b, func(p game.Position, t *game.Tile) {
		if !t.IsLiveSkull() || inPath.has(p) || t.Enemy.Attack <= 0 {
			return
		}
		if t.Enemy.HasTrait(game.TraitArmorPiercing) {
			piercing += t.Enemy.Attack
		} else {
			normal += maxInt(1, t.Enemy.Attack-eff.Armor)
		}
		if t.Enemy.HasTrait(game.TraitPoison) {
			out.PoisonStacks++
		}
	})

	if piercing > 0 {
		out.HP -= piercing
		tl.addf("Armor-piercing attacks deal %d direct damage!", piercing)
	}
	if normal > 0 {
		toArmor := minInt(out.Armor, normal)
		out.Armor -= toArmor
		toHP := normal - toArmor
		out.HP -= toHP
		tl.addf("Enemies attack! You take %d damage and lose %d armor.", toHP, toArmor)
	}
	return out, tl.result()
}
