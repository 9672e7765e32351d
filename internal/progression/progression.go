package progression

import (
	"errors"
	"math"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
)

var ErrUnknownClass = errors.New("unknown class")

// Class XP curve: level 2 needs classXPBase, each later level needs the
// previous requirement × classXPMultiplier (floored).
const (
	classXPBase       = 200
	classXPMultiplier = 1.6
)

// BasePlayerStats are the stats every class starts from before its modifiers.
var BasePlayerStats = game.StatBlock{MaxHP: 100, MaxArmor: 10, Attack: 5}

// ClassLevelInfo describes where a class XP total sits on the curve.
type ClassLevelInfo struct {
	Level          int `json:"level"`
	XPIntoLevel    int `json:"xp_into_level"`
	XPForNextLevel int `json:"xp_for_next_level"`
}

// ClassLevel walks the cumulative class curve for a total of xp.
func ClassLevel(xp int) ClassLevelInfo {
	level := 1
	required := classXPBase
	for required > 0 && xp >= required {
		xp -= required
		level++
		required = int(math.Floor(float64(required) * classXPMultiplier))
	}
	return ClassLevelInfo{Level: level, XPIntoLevel: xp, XPForNextLevel: required}
}

// EndOfRun summarises what a finished run added to the account.
type EndOfRun struct {
	Progression game.AccountProgression `json:"progression"`
	XPGained    int                     `json:"xp_gained"`
	OldLevel    int                     `json:"old_level"`
	NewLevel    int                     `json:"new_level"`
	NewUnlocks  []string                `json:"new_unlocks"`
}

// ProcessEndOfRun converts the run into class XP (floor(gold/2) + leftover
// xp), recomputes the class level and unlocks every ability whose unlock
// level lies in (old, new]. Runs of unknown classes change nothing.
func ProcessEndOfRun(prog game.AccountProgression, stats game.PlayerStats, cfg *game.GameConfig) EndOfRun {
	out := prog.Clone()
	cls, ok := cfg.Class(stats.ClassID)
	if !ok {
		return EndOfRun{Progression: out, NewUnlocks: []string{}}
	}

	gained := stats.Gold/2 + stats.XP
	cp, ok := out.ClassData[cls.ID]
	if !ok {
		cp = game.ClassProgress{Level: 1}
	}
	oldLevel := cp.Level
	cp.XP += gained
	cp.Level = ClassLevel(cp.XP).Level
	out.ClassData[cls.ID] = cp

	unlocks := []string{}
	if cp.Level > oldLevel {
		for _, u := range cls.Unlocks {
			if u.Level > oldLevel && u.Level <= cp.Level && !out.HasAbility(u.AbilityID) {
				out.UnlockedAbilityIDs = append(out.UnlockedAbilityIDs, u.AbilityID)
				unlocks = append(unlocks, u.AbilityID)
			}
		}
	}
	return EndOfRun{
		Progression: out,
		XPGained:    gained,
		OldLevel:    oldLevel,
		NewLevel:    cp.Level,
		NewUnlocks:  unlocks,
	}
}

// InitializePlayerForClass builds the level 1 stats of a new run: base stats
// plus class modifiers at full HP and armor, the class starting abilities
// ready to use and no equipment.
func InitializePlayerForClass(classID string, cfg *game.GameConfig) (game.PlayerStats, error) {
	cls, ok := cfg.Class(classID)
	if !ok {
		return game.PlayerStats{}, ErrUnknownClass
	}
	maxHP := BasePlayerStats.MaxHP + cls.BaseStatModifiers.MaxHP
	maxArmor := BasePlayerStats.MaxArmor + cls.BaseStatModifiers.MaxArmor
	abilities := make([]game.PlayerAbility, 0, len(cls.StartingAbilityIDs))
	for _, id := range cls.StartingAbilityIDs {
		abilities = append(abilities, game.PlayerAbility{ID: id, Level: 1})
	}
	return game.PlayerStats{
		HP:        maxHP,
		MaxHP:     maxHP,
		Armor:     maxArmor,
		MaxArmor:  maxArmor,
		Attack:    BasePlayerStats.Attack + cls.BaseStatModifiers.Attack,
		Level:     1,
		ClassID:   cls.ID,
		Abilities: abilities,
		Buffs:     []game.Buff{},
	}, nil
}

// Score rates a finished run.
func Score(depth int, stats game.PlayerStats) int {
	return depth*100 + stats.Gold*5 + stats.Level*50
}
