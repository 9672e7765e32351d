package engine

import (
	"fmt"
	"math/rand"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
)

func testConfig() *game.GameConfig {
	return &game.GameConfig{
		BoardSize:     6,
		MinPathLength: 3,
		TileTypes: []game.TileWeight{
			{Type: game.TileSword, Weight: 1},
			{Type: game.TileSkull, Weight: 1},
			{Type: game.TileShield, Weight: 1},
			{Type: game.TilePotion, Weight: 1},
			{Type: game.TileCoin, Weight: 1},
		},
		ChainBonuses: []game.ChainBonus{{Length: 3, Multiplier: 1.2}},
		LevelProgression: game.LevelProgression{
			BaseXP:       100,
			XPMultiplier: 1.5,
			StatGains:    game.StatBlock{MaxHP: 5, MaxArmor: 5, Attack: 1},
		},
		Enemies: []game.EnemyDefinition{
			{ID: "goblin", Name: "Goblin", BaseHP: 10, BaseAttack: 3, Rarity: 1, MinDepth: 0, MaxDepth: 100, XPReward: 10, GoldReward: 5},
			{ID: "shaman", Name: "Shaman", BaseHP: 20, BaseAttack: 2, Traits: []game.EnemyTrait{game.TraitHealAllies}, Rarity: 1, MinDepth: 5, MaxDepth: 100, XPReward: 20, GoldReward: 8},
		},
		EnemyTraits:  game.KnownTraits,
		Difficulties: map[string]game.Difficulty{game.DifficultyNormal: {Name: game.DifficultyNormal, StatMultiplier: 1, SpecialEnemySpawnModifier: 1}},
		Abilities: []game.AbilityDefinition{
			{ID: "minor_heal", Name: "Minor Heal", BaseCooldown: 5, CooldownReductionPerLevel: 1, Effect: game.HealEffect{Amount: 20}},
			{ID: "skull_crusher", Name: "Skull Crusher", BaseCooldown: 4, CooldownReductionPerLevel: 3, Effect: game.DamageAllSkullsEffect{Amount: 10}},
			{ID: "gold_rush", Name: "Gold Rush", BaseCooldown: 6, Effect: game.ApplyBuffEffect{BuffID: game.BuffDoubleGold, Duration: 3}},
			{ID: "transmute", Name: "Transmute", BaseCooldown: 8, Effect: game.ConvertTilesEffect{From: game.TileSkull, To: game.TileCoin}},
		},
		Classes: []game.ClassDefinition{
			{ID: "warrior", Name: "Warrior", StatGrowth: game.StatBlock{MaxHP: 10, MaxArmor: 5, Attack: 2}, StartingAbilityIDs: []string{"minor_heal"}},
		},
		Items: []game.ItemDefinition{
			{ID: "short_sword", Name: "Short Sword", Slot: game.SlotWeapon, UpgradePath: []game.ItemUpgrade{
				{Cost: 0, Modifiers: game.ItemModifiers{Attack: 2}},
				{Cost: 50, Modifiers: game.ItemModifiers{Attack: 4}},
			}},
			{ID: "leather_armor", Name: "Leather Armor", Slot: game.SlotArmor, UpgradePath: []game.ItemUpgrade{
				{Cost: 0, Modifiers: game.ItemModifiers{MaxHP: 10, MaxArmor: 5}},
			}},
			{ID: "lucky_charm", Name: "Lucky Charm", Slot: game.SlotAccessory1, UpgradePath: []game.ItemUpgrade{
				{Cost: 0, Modifiers: game.ItemModifiers{CoinMultiplier: 1.5, XPGainMultiplier: 2}},
			}},
		},
	}
}

func testStats() game.PlayerStats {
	return game.PlayerStats{
		HP: 100, MaxHP: 100, Armor: 10, MaxArmor: 10, Attack: 5, Level: 1,
		ClassID:   "warrior",
		Abilities: []game.PlayerAbility{{ID: "minor_heal", Level: 1}},
	}
}

// boardFrom builds a board from rows of single-letter cells:
// W sword, K skull (goblin, 10 HP), S shield, P potion, C coin, . empty.
func boardFrom(rows ...string) game.Board {
	b := game.NewBoard(len(rows))
	for r, row := range rows {
		for c, ch := range row {
			id := fmt.Sprintf("t%d-%d", r, c)
			switch ch {
			case 'W':
				b[r][c] = &game.Tile{ID: id, Type: game.TileSword}
			case 'K':
				b[r][c] = &game.Tile{ID: id, Type: game.TileSkull, Enemy: &game.EnemyState{
					EnemyID: "goblin", Name: "Goblin", HP: 10, MaxHP: 10, Attack: 3,
				}}
			case 'S':
				b[r][c] = &game.Tile{ID: id, Type: game.TileShield}
			case 'P':
				b[r][c] = &game.Tile{ID: id, Type: game.TilePotion}
			case 'C':
				b[r][c] = &game.Tile{ID: id, Type: game.TileCoin}
			}
		}
	}
	return b
}

func pos(r, c int) game.Position { return game.Position{Row: r, Col: c} }

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func testGenerator(cfg *game.GameConfig, seed int64) *Generator {
	d, _ := cfg.Difficulty(game.DifficultyNormal)
	return NewGenerator(cfg, d, rand.New(rand.NewSource(seed))).WithIDSource(counterIDs())
}
