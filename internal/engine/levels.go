package engine

import (
	"math"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
)

// XPForLevel is the xp needed to advance from level to level+1:
// floor(BaseXP × XPMultiplier^(level−1)).
func XPForLevel(level int, cfg *game.GameConfig) int {
	lp := cfg.LevelProgression
	if level < 1 {
		level = 1
	}
	return int(math.Floor(float64(lp.BaseXP) * math.Pow(lp.XPMultiplier, float64(level-1))))
}

// ResolveLevelUps spends accumulated xp on as many levels as it covers. Each
// level adds the class stat growth (the global stat gains when the class is
// unknown), fully restores HP and armor to the effective maxima and clears
// poison. It returns the number of levels gained.
func ResolveLevelUps(stats game.PlayerStats, cfg *game.GameConfig) (game.PlayerStats, int, []string) {
	out := stats.Clone()
	tl := newTurnLog()

	growth := cfg.LevelProgression.StatGains
	if cls, ok := cfg.Class(out.ClassID); ok {
		growth = cls.StatGrowth
	}

	gained := 0
	need := XPForLevel(out.Level, cfg)
	// A non-positive threshold would never terminate.
	for need > 0 && out.XP >= need {
		out.XP -= need
		out.Level++
		out.MaxHP += growth.MaxHP
		out.MaxArmor += growth.MaxArmor
		out.Attack += growth.Attack

		eff := ComputeEffectiveStats(out, cfg)
		out.HP = eff.MaxHP
		out.Armor = eff.MaxArmor
		out.PoisonStacks = 0
		gained++
		tl.addf("LEVEL UP! You are now level %d!", out.Level)
		need = XPForLevel(out.Level, cfg)
	}
	return out, gained, tl.result()
}
