package engine

import (
	"reflect"
	"testing"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
)

func TestResolveTurn_ThreeSwordsDamage(t *testing.T) {
	cfg := testConfig()
	b := boardFrom(
		"WKKSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
	)
	b[0][1].Enemy.HP, b[0][1].Enemy.MaxHP = 30, 30
	b[0][2].Enemy.HP, b[0][2].Enemy.MaxHP = 30, 30
	base := testStats()
	base.Abilities = nil
	eff := ComputeEffectiveStats(base, cfg)
	path := []game.Position{pos(0, 0), pos(0, 1), pos(0, 2)}

	res := ResolveTurn(b, base, eff, path, cfg)

	if !res.Applied {
		t.Fatalf("expected turn to be applied")
	}
	if res.PathValue != 18 {
		t.Fatalf("expected 18 damage, got %d", res.PathValue)
	}
	for _, p := range path[1:] {
		if hp := res.Board.At(p).Enemy.HP; hp != 12 {
			t.Fatalf("expected skull at %v to have 12 HP, got %d", p, hp)
		}
	}
	if res.Stats.HP != 100 || res.Stats.Armor != 10 {
		t.Fatalf("skulls in the path must not attack, got hp=%d armor=%d", res.Stats.HP, res.Stats.Armor)
	}
	if !reflect.DeepEqual(res.Removals, path) {
		t.Fatalf("expected removals to equal the path, got %v", res.Removals)
	}
	if b[0][1].Enemy.HP != 30 {
		t.Fatalf("input board was mutated")
	}
}

func TestResolveTurn_SkullToExactlyZeroIsDefeated(t *testing.T) {
	cfg := testConfig()
	b := boardFrom(
		"WKWSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
	)
	b[0][1].Enemy.HP, b[0][1].Enemy.MaxHP = 18, 18
	base := testStats()
	path := []game.Position{pos(0, 0), pos(0, 1), pos(0, 2)}

	res := ResolveTurn(b, base, ComputeEffectiveStats(base, cfg), path, cfg)

	if len(res.Defeated) != 1 || res.Defeated[0].EnemyID != "goblin" {
		t.Fatalf("expected one defeated goblin, got %+v", res.Defeated)
	}
	if res.Board.At(pos(0, 1)).Enemy.HP != 0 {
		t.Fatalf("expected skull HP 0, got %d", res.Board.At(pos(0, 1)).Enemy.HP)
	}
	if res.Stats.Gold != 5 || res.Stats.XP != 10 {
		t.Fatalf("expected reward 5G/10XP, got %dG/%dXP", res.Stats.Gold, res.Stats.XP)
	}
	found := false
	for _, p := range res.Removals {
		if p == pos(0, 1) {
			found = true
		}
	}
	if !found {
		t.Fatalf("defeated skull missing from removals: %v", res.Removals)
	}
}

func TestResolveTurn_KillXPIgnoresEquipmentMultiplier(t *testing.T) {
	cfg := testConfig()
	b := boardFrom(
		"WKWSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
	)
	base := testStats()
	base.Equipment.Accessory1 = &game.PlayerItem{ItemID: "lucky_charm", UpgradeLevel: 1}
	eff := ComputeEffectiveStats(base, cfg)
	if eff.XPMultiplier != 2 {
		t.Fatalf("expected charm xp multiplier 2, got %v", eff.XPMultiplier)
	}
	path := []game.Position{pos(0, 0), pos(0, 1), pos(0, 2)}

	res := ResolveTurn(b, base, eff, path, cfg)

	if len(res.Defeated) != 1 || res.Defeated[0].XP != 10 || res.Defeated[0].Gold != 5 {
		t.Fatalf("expected configured goblin reward 5G/10XP, got %+v", res.Defeated)
	}
	if res.Stats.XP != 10 {
		t.Fatalf("expected 10 xp credited, got %d", res.Stats.XP)
	}
}

func TestResolveTurn_DefeatedSkullsOutsidePathAreRemovedOnce(t *testing.T) {
	cfg := testConfig()
	b := boardFrom(
		"CCCSSS",
		"SSSSSS",
		"SSSKSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSK",
	)
	b[2][3].Enemy.HP = 0
	base := testStats()
	path := []game.Position{pos(0, 0), pos(0, 1), pos(0, 2)}

	res := ResolveTurn(b, base, ComputeEffectiveStats(base, cfg), path, cfg)

	want := []game.Position{pos(0, 0), pos(0, 1), pos(0, 2), pos(2, 3)}
	if !reflect.DeepEqual(res.Removals, want) {
		t.Fatalf("expected removals %v, got %v", want, res.Removals)
	}
	// Only the live goblin at (5,5) attacks: max(1, 3-10) = 1 to armor.
	if res.Stats.Armor != 9 || res.Stats.HP != 100 {
		t.Fatalf("expected armor 9 hp 100, got armor=%d hp=%d", res.Stats.Armor, res.Stats.HP)
	}
	if res.Stats.Gold != 3 {
		t.Fatalf("expected floor(3*1.2)=3 gold, got %d", res.Stats.Gold)
	}
}

func TestResolveTurn_InvalidPathIsNoop(t *testing.T) {
	cfg := testConfig()
	b := boardFrom(
		"WWSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSK",
	)
	base := testStats()
	eff := ComputeEffectiveStats(base, cfg)

	cases := map[string][]game.Position{
		"short":         {pos(0, 0), pos(0, 1)},
		"out of bounds": {pos(0, 0), pos(0, 1), pos(-1, 2)},
		"not adjacent":  {pos(0, 0), pos(0, 1), pos(3, 3)},
		"mixed types":   {pos(0, 0), pos(0, 1), pos(0, 2)},
		"repeated cell": {pos(0, 0), pos(0, 1), pos(0, 0)},
	}
	for name, path := range cases {
		res := ResolveTurn(b, base, eff, path, cfg)
		if res.Applied {
			t.Fatalf("%s: expected no-op", name)
		}
		if !reflect.DeepEqual(res.Stats, base) || !reflect.DeepEqual(res.Board, b) {
			t.Fatalf("%s: state changed on invalid path", name)
		}
		if len(res.Removals) != 0 {
			t.Fatalf("%s: expected no removals, got %v", name, res.Removals)
		}
	}
}

func TestResolveEnemyAttacks_ArmorPiercingAndPoison(t *testing.T) {
	b := boardFrom(
		"KK",
		"SS",
	)
	b[0][0].Enemy.Attack = 5
	b[0][1].Enemy.Attack = 4
	b[0][1].Enemy.Traits = []game.EnemyTrait{game.TraitArmorPiercing, game.TraitPoison}
	stats := game.PlayerStats{HP: 50, MaxHP: 50, Armor: 2, MaxArmor: 10}
	eff := game.EffectiveStats{PlayerStats: stats}

	out, log := ResolveEnemyAttacks(b, stats, eff, nil)

	// normal: max(1, 5-2)=3 -> 2 armor, 1 hp; piercing: 4 hp.
	if out.Armor != 0 || out.HP != 45 {
		t.Fatalf("expected armor 0 hp 45, got armor=%d hp=%d", out.Armor, out.HP)
	}
	if out.PoisonStacks != 1 {
		t.Fatalf("expected 1 poison stack, got %d", out.PoisonStacks)
	}
	if len(log) != 2 {
		t.Fatalf("expected two log lines, got %v", log)
	}
}

func TestResolveEnemyAttacks_UsesEffectiveArmor(t *testing.T) {
	b := boardFrom(
		"KS",
		"SS",
	)
	b[0][0].Enemy.Attack = 8
	stats := game.PlayerStats{HP: 50, MaxHP: 50, Armor: 0, MaxArmor: 10}
	eff := game.EffectiveStats{PlayerStats: stats}
	eff.Armor = 5

	out, _ := ResolveEnemyAttacks(b, stats, eff, nil)
	if out.HP != 47 {
		t.Fatalf("expected 8-5=3 damage to hp, got hp=%d", out.HP)
	}
}

func TestResolveEnemyAttacks_LastHitPoint(t *testing.T) {
	b := boardFrom(
		"KS",
		"SS",
	)
	b[0][0].Enemy.Attack = 1
	stats := game.PlayerStats{HP: 1, MaxHP: 50}
	out, _ := ResolveEnemyAttacks(b, stats, game.EffectiveStats{PlayerStats: stats}, nil)
	if out.HP != 0 {
		t.Fatalf("expected hp 0, got %d", out.HP)
	}
}

func TestResolveEnemyHealing(t *testing.T) {
	b := boardFrom(
		"KK",
		"KS",
	)
	b[0][0].Enemy.Traits = []game.EnemyTrait{game.TraitHealAllies}
	b[0][0].Enemy.HP = 9
	b[0][1].Enemy.HP = 1
	b[1][0].Enemy.HP = 0

	out, log := ResolveEnemyHealing(b)

	if out[0][0].Enemy.HP != 10 {
		t.Fatalf("healer should heal itself to max, got %d", out[0][0].Enemy.HP)
	}
	if out[0][1].Enemy.HP != 6 {
		t.Fatalf("expected 1+5=6, got %d", out[0][1].Enemy.HP)
	}
	if out[1][0].Enemy.HP != 0 {
		t.Fatalf("defeated skulls must not be healed, got %d", out[1][0].Enemy.HP)
	}
	if len(log) != 1 {
		t.Fatalf("expected one log line, got %v", log)
	}
	if b[0][1].Enemy.HP != 1 {
		t.Fatalf("input board was mutated")
	}
}

func TestResolveEnemyHealing_NoHealers(t *testing.T) {
	b := boardFrom(
		"KS",
		"SS",
	)
	b[0][0].Enemy.HP = 1
	out, log := ResolveEnemyHealing(b)
	if out[0][0].Enemy.HP != 1 || len(log) != 0 {
		t.Fatalf("expected no healing without healers")
	}
}

func TestTickStatus(t *testing.T) {
	stats := game.PlayerStats{
		HP:           20,
		PoisonStacks: 3,
		Abilities:    []game.PlayerAbility{{ID: "a", Cooldown: 2}, {ID: "b", Cooldown: 0}},
		Buffs:        []game.Buff{{ID: "x", TurnsRemaining: 1}, {ID: "y", TurnsRemaining: 3}},
	}
	out, _ := TickStatus(stats)
	if out.HP != 17 || out.PoisonStacks != 2 {
		t.Fatalf("expected hp 17 poison 2, got hp=%d poison=%d", out.HP, out.PoisonStacks)
	}
	if out.Abilities[0].Cooldown != 1 || out.Abilities[1].Cooldown != 0 {
		t.Fatalf("unexpected cooldowns %+v", out.Abilities)
	}
	if len(out.Buffs) != 1 || out.Buffs[0].ID != "y" || out.Buffs[0].TurnsRemaining != 2 {
		t.Fatalf("unexpected buffs %+v", out.Buffs)
	}
	if stats.Abilities[0].Cooldown != 2 {
		t.Fatalf("input stats were mutated")
	}
}

func TestResolveLevelUps_CrossesSeveralThresholds(t *testing.T) {
	cfg := testConfig()
	stats := testStats()
	stats.Equipment.Armor = &game.PlayerItem{ItemID: "leather_armor", UpgradeLevel: 1}
	stats.HP, stats.Armor, stats.PoisonStacks = 5, 0, 4
	// 100 + 150 + 225 = 475 crosses three thresholds.
	stats.XP = 475 + 7

	out, gained, log := ResolveLevelUps(stats, cfg)

	if gained != 3 || out.Level != 4 {
		t.Fatalf("expected 3 levels to level 4, got gained=%d level=%d", gained, out.Level)
	}
	if out.XP != 7 {
		t.Fatalf("expected 7 xp left, got %d", out.XP)
	}
	if out.MaxHP != 130 || out.Attack != 11 {
		t.Fatalf("expected class growth applied, got maxHp=%d attack=%d", out.MaxHP, out.Attack)
	}
	eff := ComputeEffectiveStats(out, cfg)
	if out.HP != eff.MaxHP || out.Armor != eff.MaxArmor {
		t.Fatalf("expected full hp/armor, got %d/%d of %d/%d", out.HP, out.Armor, eff.MaxHP, eff.MaxArmor)
	}
	if out.PoisonStacks != 0 {
		t.Fatalf("expected poison cleared, got %d", out.PoisonStacks)
	}
	if len(log) != 3 {
		t.Fatalf("expected one log line per level, got %v", log)
	}
}

func TestXPForLevel(t *testing.T) {
	cfg := testConfig()
	want := []int{100, 150, 225, 337}
	for i, w := range want {
		if got := XPForLevel(i+1, cfg); got != w {
			t.Fatalf("level %d: expected %d, got %d", i+1, w, got)
		}
	}
}

func TestCompleteTurn_RefillsRemovals(t *testing.T) {
	cfg := testConfig()
	b := boardFrom(
		"WWWSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
		"SSSSSS",
	)
	base := testStats()
	path := []game.Position{pos(0, 0), pos(0, 1), pos(0, 2)}
	res := ResolveTurn(b, base, ComputeEffectiveStats(base, cfg), path, cfg)

	next := CompleteTurn(res, 2, testGenerator(cfg, 3))

	if !next.Full() {
		t.Fatalf("expected a full board after refill")
	}
	for _, p := range path {
		if next.At(p).ID == b.At(p).ID {
			t.Fatalf("expected %v to be replaced", p)
		}
	}
	if res.Board.At(pos(0, 0)) == nil {
		t.Fatalf("turn result board was mutated")
	}
}
