package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// AbilityResult is the outcome of an ability activation.
type AbilityResult struct {
	Applied  bool             `json:"applied"`
	Board    game.Board       `json:"board"`
	Stats    game.PlayerStats `json:"stats"`
	Log      []string         `json:"log"`
	Defeated []Defeat         `json:"defeated,omitempty"`
}

// AbilityCooldown is the cooldown an ability goes on after use at level:
// max(0, base − reduction × (level − 1)).
func AbilityCooldown(def game.AbilityDefinition, level int) int {
	if level < 1 {
		level = 1
	}
	return maxInt(0, def.BaseCooldown-def.CooldownReductionPerLevel*(level-1))
}

// ActivateAbility applies the effect of ability id. Unknown, unowned and
// cooling-down abilities leave board and stats unchanged and Applied false.
// Skulls killed by DamageAllSkulls credit their rewards here; their tiles
// stay on the board until the next resolved turn sweeps them.
func ActivateAbility(id string, b game.Board, stats game.PlayerStats, cfg *game.GameConfig) AbilityResult {
	unchanged := AbilityResult{Board: b.Clone(), Stats: stats.Clone(), Log: []string{}}
	owned, ok := stats.Ability(id)
	if !ok || owned.Cooldown > 0 {
		return unchanged
	}
	def, ok := cfg.Ability(id)
	if !ok || def.Effect == nil {
		return unchanged
	}

	app := &effectApplier{
		board: b.Clone(),
		stats: stats.Clone(),
		cfg:   cfg,
		tl:    newTurnLog(),
	}
	app.tl.addf("You used %s!", def.Name)
	def.Effect.Accept(app)

	for i := range app.stats.Abilities {
		if app.stats.Abilities[i].ID == id {
			app.stats.Abilities[i].Cooldown = AbilityCooldown(def, owned.Level)
		}
	}
	return AbilityResult{
		Applied:  true,
		Board:    app.board,
		Stats:    app.stats,
		Log:      app.tl.result(),
		Defeated: app.defeated,
	}
}

// effectApplier mutates private copies of board and stats.
type effectApplier struct {
	board    game.Board
	stats    game.PlayerStats
	cfg      *game.GameConfig
	tl       *turnLog
	defeated []Defeat
}

func (a *effectApplier) VisitHeal(e game.HealEffect) {
	eff := ComputeEffectiveStats(a.stats, a.cfg)
	healed := maxInt(0, minInt(eff.MaxHP-a.stats.HP, e.Amount))
	a.stats.HP += healed
	a.tl.addf("You healed for %d HP.", healed)
}

func (a *effectApplier) VisitDamageAllSkulls(e game.DamageAllSkullsEffect) {
	forEachTile(a.board, func(p game.Position, t *game.Tile) {
		if !t.IsLiveSkull() {
			return
		}
		t.Enemy.HP -= e.Amount
		if t.Enemy.HP > 0 {
			return
		}
		d := Defeat{Position: p, EnemyID: t.Enemy.EnemyID, Name: t.Enemy.Name}
		if def, ok := a.cfg.Enemy(t.Enemy.EnemyID); ok {
			d.Gold = def.GoldReward
			d.XP = def.XPReward
		}
		a.stats.Gold += d.Gold
		a.stats.XP += d.XP
		a.defeated = append(a.defeated, d)
	})
	a.tl.addf("All enemies take %d damage.", e.Amount)
	for _, d := range a.defeated {
		a.tl.addf("You defeated a %s! (+%dG, +%dXP)", d.Name, d.Gold, d.XP)
	}
}

func (a *effectApplier) VisitApplyBuff(e game.ApplyBuffEffect) {
	a.stats.Buffs = append(a.stats.Buffs, game.Buff{ID: e.BuffID, TurnsRemaining: e.Duration})
	a.tl.addf("%s is active for %d turns.", e.BuffID, e.Duration)
}

func (a *effectApplier) VisitConvertTiles(e game.ConvertTilesEffect) {
	if e.To == game.TileSkull || !e.To.Valid() {
		return
	}
	converted := 0
	forEachTile(a.board, func(_ game.Position, t *game.Tile) {
		if t.Type != e.From {
			return
		}
		t.Type = e.To
		t.Enemy = nil
		converted++
	})
	a.tl.addf("%d %s tiles became %s.", converted, e.From, e.To)
}
