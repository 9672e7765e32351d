package game

// TileWeight is one entry of the tile-type weight table.
type TileWeight struct {
	Type   TileType `json:"type"`
	Weight float64  `json:"weight"`
}

// ChainBonus multiplies path effects once a chain reaches Length.
type ChainBonus struct {
	Length     int     `json:"length"`
	Multiplier float64 `json:"multiplier"`
}

// StatBlock is a flat max-HP/max-armor/attack delta.
type StatBlock struct {
	MaxHP    int `json:"max_hp"`
	MaxArmor int `json:"max_armor"`
	Attack   int `json:"attack"`
}

// LevelProgression holds the in-run XP curve.
type LevelProgression struct {
	BaseXP       int       `json:"base_xp"`
	XPMultiplier float64   `json:"xp_multiplier"`
	StatGains    StatBlock `json:"stat_gains"`
}

// Difficulty is a preset scaling enemy stats and special-enemy spawns.
type Difficulty struct {
	Name                      string  `json:"name"`
	StatMultiplier            float64 `json:"stat_multiplier"`
	SpecialEnemySpawnModifier float64 `json:"special_enemy_spawn_modifier"`
}

// DifficultyNormal must exist in every content set.
const DifficultyNormal = "Normal"

// EnemyDefinition describes a Skull enemy.
type EnemyDefinition struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	BaseHP     int          `json:"base_hp"`
	BaseAttack int          `json:"base_attack"`
	BaseArmor  int          `json:"base_armor"`
	Traits     []EnemyTrait `json:"traits"`
	Rarity     float64      `json:"rarity"`
	MinDepth   int          `json:"min_depth"`
	MaxDepth   int          `json:"max_depth"`
	XPReward   int          `json:"xp_reward"`
	GoldReward int          `json:"gold_reward"`
}

// ClassUnlock grants an ability once the class reaches Level.
type ClassUnlock struct {
	Level     int    `json:"level"`
	AbilityID string `json:"ability_id"`
}

// ClassDefinition describes a playable class.
type ClassDefinition struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Icon               string        `json:"icon"`
	BaseStatModifiers  StatBlock     `json:"base_stat_modifiers"`
	StatGrowth         StatBlock     `json:"stat_growth"`
	StartingAbilityIDs []string      `json:"starting_ability_ids"`
	Unlocks            []ClassUnlock `json:"unlocks"`
}

// ItemModifiers are the bonuses granted by one upgrade tier. Zero multipliers
// mean "absent" and count as 1.0.
type ItemModifiers struct {
	MaxHP            int     `json:"max_hp,omitempty"`
	MaxArmor         int     `json:"max_armor,omitempty"`
	Attack           int     `json:"attack,omitempty"`
	CoinMultiplier   float64 `json:"coin_multiplier,omitempty"`
	XPGainMultiplier float64 `json:"xp_gain_multiplier,omitempty"`
}

// ItemUpgrade is one tier of an item's upgrade path.
type ItemUpgrade struct {
	Cost      int           `json:"cost"`
	Modifiers ItemModifiers `json:"modifiers"`
}

// ItemDefinition describes an equippable item.
type ItemDefinition struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Slot        EquipmentSlot `json:"slot"`
	Rarity      float64       `json:"rarity"`
	UpgradePath []ItemUpgrade `json:"upgrade_path"`
}

// Upgrade returns the tier entry for a 1-based upgrade level.
func (d ItemDefinition) Upgrade(level int) (ItemUpgrade, bool) {
	if level < 1 || level > len(d.UpgradePath) {
		return ItemUpgrade{}, false
	}
	return d.UpgradePath[level-1], true
}

// StartingUnlocks seeds a fresh AccountProgression.
type StartingUnlocks struct {
	AbilityIDs []string `json:"ability_ids"`
	ItemIDs    []string `json:"item_ids"`
}

// GameConfig is the validated content set the engine runs on.
type GameConfig struct {
	BoardSize        int                   `json:"board_size"`
	MinPathLength    int                   `json:"min_path_length"`
	TileTypes        []TileWeight          `json:"tile_types"`
	ChainBonuses     []ChainBonus          `json:"chain_bonuses"`
	LevelProgression LevelProgression      `json:"level_progression"`
	Enemies          []EnemyDefinition     `json:"enemies"`
	EnemyTraits      []EnemyTrait          `json:"enemy_traits"`
	Difficulties     map[string]Difficulty `json:"difficulties"`
	Abilities        []AbilityDefinition   `json:"abilities"`
	Classes          []ClassDefinition     `json:"classes"`
	Items            []ItemDefinition      `json:"items"`
	StartingUnlocks  StartingUnlocks       `json:"starting_unlocks"`
}

// Enemy looks up an enemy definition by id.
func (c *GameConfig) Enemy(id string) (EnemyDefinition, bool) {
	for _, e := range c.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return EnemyDefinition{}, false
}

// Class looks up a class definition by id.
func (c *GameConfig) Class(id string) (ClassDefinition, bool) {
	for _, cl := range c.Classes {
		if cl.ID == id {
			return cl, true
		}
	}
	return ClassDefinition{}, false
}

// Ability looks up an ability definition by id.
func (c *GameConfig) Ability(id string) (AbilityDefinition, bool) {
	for _, a := range c.Abilities {
		if a.ID == id {
			return a, true
		}
	}
	return AbilityDefinition{}, false
}

// Item looks up an item definition by id.
func (c *GameConfig) Item(id string) (ItemDefinition, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemDefinition{}, false
}

// Difficulty looks up a difficulty preset by name.
func (c *GameConfig) Difficulty(name string) (Difficulty, bool) {
	d, ok := c.Difficulties[name]
	return d, ok
}

// DefaultProgression is the progression of a fresh install.
func (c *GameConfig) DefaultProgression() AccountProgression {
	return AccountProgression{
		ClassData:          map[string]ClassProgress{},
		UnlockedAbilityIDs: append([]string(nil), c.StartingUnlocks.AbilityIDs...),
		UnlockedItemIDs:    append([]string(nil), c.StartingUnlocks.ItemIDs...),
	}
}
