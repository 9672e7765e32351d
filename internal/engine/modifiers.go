package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// --- Modifier helpers --------------------------------------------------

// ComputeEffectiveStats applies the current upgrade tier of every equipped
// item to base. Flat bonuses add; gold and xp multipliers multiply. HP and
// armor are clamped to the resulting maxima.
func ComputeEffectiveStats(base game.PlayerStats, cfg *game.GameConfig) game.EffectiveStats {
	eff := game.EffectiveStats{PlayerStats: base.Clone(), GoldMultiplier: 1.0, XPMultiplier: 1.0}
	for _, slot := range game.EquipmentSlots {
		item := base.Equipment.Get(slot)
		if item == nil {
			continue
		}
		def, ok := cfg.Item(item.ItemID)
		if !ok {
			continue
		}
		tier, ok := def.Upgrade(item.UpgradeLevel)
		if !ok {
			continue
		}
		m := tier.Modifiers
		eff.MaxHP += m.MaxHP
		eff.MaxArmor += m.MaxArmor
		eff.Attack += m.Attack
		if m.CoinMultiplier != 0 {
			eff.GoldMultiplier *= m.CoinMultiplier
		}
		if m.XPGainMultiplier != 0 {
			eff.XPMultiplier *= m.XPGainMultiplier
		}
	}
	eff.HP = minInt(eff.HP, eff.MaxHP)
	eff.Armor = minInt(eff.Armor, eff.MaxArmor)
	return eff
}

// ChainBonusFor returns the multiplier of the highest-threshold chain bonus
// whose length does not exceed chainLength, or 1.0 when none qualifies.
func ChainBonusFor(cfg *game.GameConfig, chainLength int) float64 {
	bonus := 1.0
	best := -1
	for _, cb := range cfg.ChainBonuses {
		if chainLength >= cb.Length && cb.Length > best {
			best = cb.Length
			bonus = cb.Multiplier
		}
	}
	return bonus
}
