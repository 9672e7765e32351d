package engine

import (
	"math"
	"math/rand"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

	"github.com/google/uuid"
)

// Generator builds and refills boards from the content tables. It owns the
// random source so a seeded generator reproduces the same boards.
type Generator struct {
	cfg        *game.GameConfig
	difficulty game.Difficulty
	rng        *rand.Rand
	newID      func() string
}

// NewGenerator returns a generator for the given content and difficulty.
func NewGenerator(cfg *game.GameConfig, difficulty game.Difficulty, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Generator{cfg: cfg, difficulty: difficulty, rng: rng, newID: uuid.NewString}
}

// WithIDSource replaces the tile id source (tests use counters).
func (g *Generator) WithIDSource(fn func() string) *Generator {
	g.newID = fn
	return g
}

// Difficulty returns the preset the generator scales enemies with.
func (g *Generator) Difficulty() game.Difficulty { return g.difficulty }

// SelectEnemy draws an enemy whose depth range contains depth. Enemies with
// MinDepth 0 are basic; the rest are scaled by the special spawn modifier.
func (g *Generator) SelectEnemy(depth int) (game.EnemyDefinition, bool) {
	eligible := make([]game.EnemyDefinition, 0, len(g.cfg.Enemies))
	weights := make([]float64, 0, len(g.cfg.Enemies))
	total := 0.0
	for _, e := range g.cfg.Enemies {
		if depth < e.MinDepth || depth > e.MaxDepth {
			continue
		}
		mod := 1.0
		if e.MinDepth != 0 {
			mod = g.difficulty.SpecialEnemySpawnModifier
		}
		w := e.Rarity * mod
		eligible = append(eligible, e)
		weights = append(weights, w)
		total += w
	}
	if len(eligible) == 0 {
		return game.EnemyDefinition{}, false
	}
	if total <= 0 {
		return eligible[g.rng.Intn(len(eligible))], true
	}
	roll := g.rng.Float64() * total
	for i, w := range weights {
		if roll < w {
			return eligible[i], true
		}
		roll -= w
	}
	return eligible[len(eligible)-1], true
}

// NewSkullTile builds a Skull tile for def scaled by the difficulty preset.
func NewSkullTile(id string, def game.EnemyDefinition, difficulty game.Difficulty) *game.Tile {
	hp := int(math.Ceil(float64(def.BaseHP) * difficulty.StatMultiplier))
	atk := int(math.Ceil(float64(def.BaseAttack) * difficulty.StatMultiplier))
	return &game.Tile{
		ID:    id,
		Type:  game.TileSkull,
		IsNew: true,
		Enemy: &game.EnemyState{
			EnemyID: def.ID,
			Name:    def.Name,
			HP:      hp,
			MaxHP:   hp,
			Attack:  atk,
			Armor:   def.BaseArmor,
			Traits:  append([]game.EnemyTrait(nil), def.Traits...),
		},
	}
}

// CreateTile draws one tile for the given depth. It always returns a tile:
// a Skull draw with no eligible enemy falls back to a random non-Skull type.
func (g *Generator) CreateTile(depth int) *game.Tile {
	total := 0.0
	for _, tw := range g.cfg.TileTypes {
		total += tw.Weight
	}
	if total > 0 {
		roll := g.rng.Float64() * total
		for _, tw := range g.cfg.TileTypes {
			if roll < tw.Weight {
				if tw.Type != game.TileSkull {
					return &game.Tile{ID: g.newID(), Type: tw.Type, IsNew: true}
				}
				if def, ok := g.SelectEnemy(depth); ok {
					return NewSkullTile(g.newID(), def, g.difficulty)
				}
				break
			}
			roll -= tw.Weight
		}
	}
	return &game.Tile{ID: g.newID(), Type: g.fallbackType(), IsNew: true}
}

func (g *Generator) fallbackType() game.TileType {
	types := make([]game.TileType, 0, len(g.cfg.TileTypes))
	for _, tw := range g.cfg.TileTypes {
		if tw.Type != game.TileSkull {
			types = append(types, tw.Type)
		}
	}
	if len(types) == 0 {
		return game.TileSword
	}
	return types[g.rng.Intn(len(types))]
}

// InitializeBoard fills a fresh BoardSize×BoardSize grid.
func (g *Generator) InitializeBoard(depth int) game.Board {
	b := game.NewBoard(g.cfg.BoardSize)
	for r := range b {
		for c := range b[r] {
			b[r][c] = g.CreateTile(depth)
		}
	}
	return b
}

// ApplyGravityAndRefill returns a copy of b where every column has been
// compacted downward (stable) and the emptied top cells refilled.
func (g *Generator) ApplyGravityAndRefill(b game.Board, depth int) game.Board {
	out := CompactColumns(b)
	for r := range out {
		for c := range out[r] {
			if out[r][c] == nil {
				out[r][c] = g.CreateTile(depth)
			}
		}
	}
	return out
}

// CompactColumns returns a copy of b with tiles moved toward increasing row
// index, keeping their relative order within each column.
func CompactColumns(b game.Board) game.Board {
	out := b.Clone()
	size := out.Size()
	for col := 0; col < size; col++ {
		write := size - 1
		for read := size - 1; read >= 0; read-- {
			if out[read][col] == nil {
				continue
			}
			if write != read {
				out[write][col] = out[read][col]
				out[read][col] = nil
			}
			write--
		}
	}
	return out
}
