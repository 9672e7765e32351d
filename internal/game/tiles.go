package game

// TileType is the canonical tile kind. Values match the content files.
type TileType string

const (
	TileSword  TileType = "SWORD"
	TileSkull  TileType = "SKULL"
	TileShield TileType = "SHIELD"
	TilePotion TileType = "POTION"
	TileCoin   TileType = "COIN"
)

// TileTypes lists every tile kind in display order.
var TileTypes = []TileType{TileSword, TileSkull, TileShield, TilePotion, TileCoin}

// Valid reports whether t is a known tile kind.
func (t TileType) Valid() bool {
	switch t {
	case TileSword, TileSkull, TileShield, TilePotion, TileCoin:
		return true
	}
	return false
}

// IsAttack reports whether the tile counts as an attack tile when chained.
func (t TileType) IsAttack() bool {
	return t == TileSword || t == TileSkull
}

// CompatibleWith reports whether a tile of type t may extend a path locked to
// type locked. Sword and Skull chain with each other; everything else needs
// an exact match.
func (t TileType) CompatibleWith(locked TileType) bool {
	if locked.IsAttack() {
		return t.IsAttack()
	}
	return t == locked
}

// EnemyTrait alters how a Skull takes part in the combat phases.
type EnemyTrait string

const (
	TraitPoison        EnemyTrait = "POISON"
	TraitArmorPiercing EnemyTrait = "ARMOR_PIERCING"
	TraitHealAllies    EnemyTrait = "HEAL_ALLIES"
	TraitSpawnSkulls   EnemyTrait = "SPAWN_SKULLS"
)

// KnownTraits is the set of traits the engine understands.
var KnownTraits = []EnemyTrait{TraitPoison, TraitArmorPiercing, TraitHealAllies, TraitSpawnSkulls}

// EnemyState holds the combat fields of a Skull tile.
type EnemyState struct {
	EnemyID string       `json:"enemy_id"`
	Name    string       `json:"name"`
	HP      int          `json:"hp"`
	MaxHP   int          `json:"max_hp"`
	Attack  int          `json:"attack"`
	Armor   int          `json:"armor"`
	Traits  []EnemyTrait `json:"traits,omitempty"`
}

// HasTrait reports whether the enemy carries trait tr.
func (e *EnemyState) HasTrait(tr EnemyTrait) bool {
	if e == nil {
		return false
	}
	for _, t := range e.Traits {
		if t == tr {
			return true
		}
	}
	return false
}

// Tile is one occupied board cell. Enemy is set only for Skull tiles.
type Tile struct {
	ID    string      `json:"id"`
	Type  TileType    `json:"type"`
	IsNew bool        `json:"is_new,omitempty"`
	Enemy *EnemyState `json:"enemy,omitempty"`
}

// IsLiveSkull reports whether the tile is a Skull with HP left.
func (t *Tile) IsLiveSkull() bool {
	return t != nil && t.Type == TileSkull && t.Enemy != nil && t.Enemy.HP > 0
}

// IsDefeated reports whether the tile is a Skull whose HP has run out.
func (t *Tile) IsDefeated() bool {
	return t != nil && t.Type == TileSkull && t.Enemy != nil && t.Enemy.HP <= 0
}

// Clone returns a deep copy of the tile.
func (t *Tile) Clone() *Tile {
	if t == nil {
		return nil
	}
	c := *t
	if t.Enemy != nil {
		e := *t.Enemy
		e.Traits = append([]EnemyTrait(nil), t.Enemy.Traits...)
		c.Enemy = &e
	}
	return &c
}
