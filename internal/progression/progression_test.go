package progression

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
)

func testConfig() *game.GameConfig {
	return &game.GameConfig{
		Abilities: []game.AbilityDefinition{
			{ID: "minor_heal", Effect: game.HealEffect{Amount: 10}},
			{ID: "whirlwind", Effect: game.DamageAllSkullsEffect{Amount: 5}},
			{ID: "fortify", Effect: game.HealEffect{Amount: 30}},
		},
		Classes: []game.ClassDefinition{{
			ID:                 "warrior",
			Name:               "Warrior",
			BaseStatModifiers:  game.StatBlock{MaxHP: 20, MaxArmor: 5, Attack: 1},
			StartingAbilityIDs: []string{"minor_heal"},
			Unlocks: []game.ClassUnlock{
				{Level: 2, AbilityID: "whirlwind"},
				{Level: 4, AbilityID: "fortify"},
			},
		}},
		Items: []game.ItemDefinition{
			{ID: "short_sword", Name: "Short Sword", Slot: game.SlotWeapon, UpgradePath: []game.ItemUpgrade{
				{Cost: 0, Modifiers: game.ItemModifiers{Attack: 2}},
				{Cost: 40, Modifiers: game.ItemModifiers{Attack: 4}},
			}},
			{ID: "leather_armor", Name: "Leather Armor", Slot: game.SlotArmor, UpgradePath: []game.ItemUpgrade{
				{Cost: 0, Modifiers: game.ItemModifiers{MaxArmor: 5}},
			}},
			{ID: "ring", Name: "Ring", Slot: game.SlotAccessory1, UpgradePath: []game.ItemUpgrade{
				{Cost: 0, Modifiers: game.ItemModifiers{CoinMultiplier: 1.2}},
			}},
			{ID: "amulet", Name: "Amulet", Slot: game.SlotAccessory2, UpgradePath: []game.ItemUpgrade{
				{Cost: 0, Modifiers: game.ItemModifiers{XPGainMultiplier: 1.2}},
			}},
		},
		StartingUnlocks: game.StartingUnlocks{
			AbilityIDs: []string{"minor_heal"},
			ItemIDs:    []string{"short_sword", "leather_armor"},
		},
	}
}

func TestClassLevel(t *testing.T) {
	cases := []struct {
		xp, level, into, next int
	}{
		{0, 1, 0, 200},
		{199, 1, 199, 200},
		{200, 2, 0, 320},
		{519, 2, 319, 320},
		{520, 3, 0, 512},
		{1032, 4, 0, 819},
	}
	for _, tc := range cases {
		got := ClassLevel(tc.xp)
		if got.Level != tc.level || got.XPIntoLevel != tc.into || got.XPForNextLevel != tc.next {
			t.Fatalf("ClassLevel(%d) = %+v, want level %d into %d next %d", tc.xp, got, tc.level, tc.into, tc.next)
		}
	}
}

func TestProcessEndOfRun_UnlocksCrossedLevels(t *testing.T) {
	cfg := testConfig()
	prog := cfg.DefaultProgression()
	stats := game.PlayerStats{ClassID: "warrior", Gold: 101, XP: 470}

	res := ProcessEndOfRun(prog, stats, cfg)

	if res.XPGained != 520 {
		t.Fatalf("expected floor(101/2)+470=520, got %d", res.XPGained)
	}
	if res.OldLevel != 1 || res.NewLevel != 3 {
		t.Fatalf("expected level 1 -> 3, got %d -> %d", res.OldLevel, res.NewLevel)
	}
	if len(res.NewUnlocks) != 1 || res.NewUnlocks[0] != "whirlwind" {
		t.Fatalf("expected whirlwind unlocked, got %v", res.NewUnlocks)
	}
	if !res.Progression.HasAbility("whirlwind") || res.Progression.HasAbility("fortify") {
		t.Fatalf("unexpected unlock set %v", res.Progression.UnlockedAbilityIDs)
	}
	if prog.HasAbility("whirlwind") {
		t.Fatalf("input progression was mutated")
	}

	again := ProcessEndOfRun(res.Progression, game.PlayerStats{ClassID: "warrior", XP: 600}, cfg)
	if again.NewLevel != 4 || len(again.NewUnlocks) != 1 || again.NewUnlocks[0] != "fortify" {
		t.Fatalf("expected fortify at level 4, got level %d unlocks %v", again.NewLevel, again.NewUnlocks)
	}
	count := 0
	for _, id := range again.Progression.UnlockedAbilityIDs {
		if id == "whirlwind" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("unlock recorded %d times", count)
	}
}

func TestProcessEndOfRun_UnknownClass(t *testing.T) {
	cfg := testConfig()
	res := ProcessEndOfRun(cfg.DefaultProgression(), game.PlayerStats{ClassID: "bard", Gold: 500}, cfg)
	if res.XPGained != 0 || len(res.Progression.ClassData) != 0 {
		t.Fatalf("unknown class must not change progression, got %+v", res)
	}
}

func TestInitializePlayerForClass(t *testing.T) {
	cfg := testConfig()
	stats, err := InitializePlayerForClass("warrior", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.HP != 120 || stats.MaxHP != 120 || stats.Armor != 15 || stats.Attack != 6 || stats.Level != 1 {
		t.Fatalf("unexpected starting stats %+v", stats)
	}
	if len(stats.Abilities) != 1 || stats.Abilities[0].Level != 1 || stats.Abilities[0].Cooldown != 0 {
		t.Fatalf("unexpected starting abilities %+v", stats.Abilities)
	}
	if _, err := InitializePlayerForClass("bard", cfg); !errors.Is(err, ErrUnknownClass) {
		t.Fatalf("expected ErrUnknownClass, got %v", err)
	}
}

func TestScore(t *testing.T) {
	if got := Score(7, game.PlayerStats{Gold: 20, Level: 3}); got != 700+100+150 {
		t.Fatalf("unexpected score %d", got)
	}
}

func TestGenerateOffers_PrefersUpgradeAndEmptySlot(t *testing.T) {
	cfg := testConfig()
	prog := cfg.DefaultProgression()
	prog.UnlockedItemIDs = append(prog.UnlockedItemIDs, "ring", "amulet")
	stats := game.PlayerStats{}
	stats.Equipment.Weapon = &game.PlayerItem{ItemID: "short_sword", UpgradeLevel: 1}

	for seed := int64(0); seed < 30; seed++ {
		offers := GenerateOffers(rand.New(rand.NewSource(seed)), stats, prog, cfg)
		if len(offers) != MaxOffers {
			t.Fatalf("seed %d: expected %d offers, got %d", seed, MaxOffers, len(offers))
		}
		if offers[0].Kind != OfferUpgrade || offers[0].ItemID != "short_sword" || offers[0].NextLevel != 2 || offers[0].Cost != 40 {
			t.Fatalf("seed %d: expected sword upgrade first, got %+v", seed, offers[0])
		}
		seen := map[string]bool{}
		for _, o := range offers {
			if seen[o.ItemID] {
				t.Fatalf("seed %d: duplicate item %s", seed, o.ItemID)
			}
			seen[o.ItemID] = true
			if o.Kind == OfferNewItem && o.Cost != 0 {
				t.Fatalf("seed %d: new items are free, got cost %d", seed, o.Cost)
			}
		}
	}
}

func TestGenerateOffers_NothingToOffer(t *testing.T) {
	cfg := testConfig()
	prog := game.AccountProgression{}
	stats := game.PlayerStats{}
	stats.Equipment.Armor = &game.PlayerItem{ItemID: "leather_armor", UpgradeLevel: 1}
	if offers := GenerateOffers(rand.New(rand.NewSource(1)), stats, prog, cfg); len(offers) != 0 {
		t.Fatalf("expected no offers, got %+v", offers)
	}
}

func TestPurchaseOffer_Upgrade(t *testing.T) {
	cfg := testConfig()
	stats := game.PlayerStats{Gold: 50}
	stats.Equipment.Weapon = &game.PlayerItem{ItemID: "short_sword", UpgradeLevel: 1}
	offer := Offer{Kind: OfferUpgrade, ItemID: "short_sword", Slot: game.SlotWeapon, NextLevel: 2, Cost: 40}

	p, err := PurchaseOffer(stats, cfg.DefaultProgression(), offer, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Stats.Gold != 10 || p.Stats.Equipment.Weapon.UpgradeLevel != 2 {
		t.Fatalf("expected 10 gold and tier 2, got %d and %d", p.Stats.Gold, p.Stats.Equipment.Weapon.UpgradeLevel)
	}
	if stats.Equipment.Weapon.UpgradeLevel != 1 {
		t.Fatalf("input stats were mutated")
	}

	if _, err := PurchaseOffer(p.Stats, p.Progression, offer, cfg); !errors.Is(err, ErrStaleOffer) {
		t.Fatalf("expected ErrStaleOffer on replay, got %v", err)
	}

	stats.Gold = 39
	if _, err := PurchaseOffer(stats, cfg.DefaultProgression(), offer, cfg); !errors.Is(err, ErrInsufficientGold) {
		t.Fatalf("expected ErrInsufficientGold, got %v", err)
	}
}

func TestPurchaseOffer_NewItemUnlocksOnce(t *testing.T) {
	cfg := testConfig()
	prog := cfg.DefaultProgression()
	offer := Offer{Kind: OfferNewItem, ItemID: "ring", Slot: game.SlotAccessory1, NextLevel: 1}

	p, err := PurchaseOffer(game.PlayerStats{Gold: 3}, prog, offer, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Stats.Gold != 3 {
		t.Fatalf("new items are free, gold changed to %d", p.Stats.Gold)
	}
	if it := p.Stats.Equipment.Accessory1; it == nil || it.ItemID != "ring" || it.UpgradeLevel != 1 {
		t.Fatalf("expected ring equipped at tier 1, got %+v", it)
	}
	if !p.Discovered || !p.Progression.HasItem("ring") {
		t.Fatalf("expected ring to be discovered")
	}

	p2, err := PurchaseOffer(game.PlayerStats{}, p.Progression, offer, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p2.Discovered || len(p2.Progression.UnlockedItemIDs) != len(p.Progression.UnlockedItemIDs) {
		t.Fatalf("ring unlocked twice")
	}
}
