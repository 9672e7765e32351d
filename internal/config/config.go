package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

	"golang.org/x/sync/errgroup"
)

// Content file names inside the content directory.
const (
	FileGameSettings = "game_settings.json"
	FileAbilities    = "abilities.json"
	FileClasses      = "classes.json"
	FileEnemies      = "enemies.json"
	FileItems        = "items.json"
	FileDifficulties = "difficulties.json"
)

var contentFiles = []string{FileGameSettings, FileAbilities, FileClasses, FileEnemies, FileItems, FileDifficulties}

type rawSettings struct {
	BoardSize        int                   `json:"board_size"`
	MinPathLength    int                   `json:"min_path_length"`
	TileTypes        []game.TileWeight     `json:"tile_types"`
	ChainBonuses     []game.ChainBonus     `json:"chain_bonuses"`
	LevelProgression game.LevelProgression `json:"level_progression"`
	StartingUnlocks  *game.StartingUnlocks `json:"starting_unlocks"`
}

type rawEnemies struct {
	ValidTraits []game.EnemyTrait      `json:"valid_traits"`
	Definitions []game.EnemyDefinition `json:"definitions"`
}

// defaultStartingUnlocks seeds fresh progression when game_settings.json
// does not name its own.
var defaultStartingUnlocks = game.StartingUnlocks{
	AbilityIDs: []string{"minor_heal", "skull_crusher", "gold_rush"},
	ItemIDs:    []string{"short_sword", "leather_armor"},
}

// LoadContent reads the six content documents from dir concurrently, then
// validates them into a GameConfig. Any failure is reported as a single
// error naming the offending file.
func LoadContent(ctx context.Context, dir string) (*game.GameConfig, error) {
	docs := make([][]byte, len(contentFiles))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range contentFiles {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read content file %s: %w", path, err)
			}
			docs[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		settings     rawSettings
		abilities    []game.AbilityDefinition
		classes      []game.ClassDefinition
		enemies      rawEnemies
		items        []game.ItemDefinition
		difficulties map[string]game.Difficulty
	)
	targets := []interface{}{&settings, &abilities, &classes, &enemies, &items, &difficulties}
	for i, name := range contentFiles {
		if err := json.Unmarshal(docs[i], targets[i]); err != nil {
			return nil, fmt.Errorf("failed to parse content file %s: %w", name, err)
		}
	}

	cfg := &game.GameConfig{
		BoardSize:        settings.BoardSize,
		MinPathLength:    settings.MinPathLength,
		TileTypes:        settings.TileTypes,
		ChainBonuses:     settings.ChainBonuses,
		LevelProgression: settings.LevelProgression,
		Enemies:          enemies.Definitions,
		EnemyTraits:      enemies.ValidTraits,
		Difficulties:     difficulties,
		Abilities:        abilities,
		Classes:          classes,
		Items:            items,
		StartingUnlocks:  defaultStartingUnlocks,
	}
	if settings.StartingUnlocks != nil {
		cfg.StartingUnlocks = *settings.StartingUnlocks
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural and referential integrity of cfg and sorts the
// chain bonus table by length. It returns the first problem found.
func Validate(cfg *game.GameConfig) error {
	if err := validateSettings(cfg); err != nil {
		return err
	}
	if err := validateEnemies(cfg); err != nil {
		return err
	}
	if _, ok := cfg.Difficulties[game.DifficultyNormal]; !ok {
		return fmt.Errorf("content %s: the '%s' difficulty preset is missing", FileDifficulties, game.DifficultyNormal)
	}
	for name, d := range cfg.Difficulties {
		if d.StatMultiplier <= 0 || d.SpecialEnemySpawnModifier < 0 {
			return fmt.Errorf("content %s: difficulty '%s' has invalid multipliers", FileDifficulties, name)
		}
	}
	abilityIDs := make(map[string]struct{}, len(cfg.Abilities))
	for _, a := range cfg.Abilities {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("content %s: ability entry missing 'id'", FileAbilities)
		}
		if _, dup := abilityIDs[a.ID]; dup {
			return fmt.Errorf("content %s: duplicate ability id '%s'", FileAbilities, a.ID)
		}
		if a.Effect == nil {
			return fmt.Errorf("content %s: ability '%s' has no effect", FileAbilities, a.ID)
		}
		if a.BaseCooldown < 0 || a.CooldownReductionPerLevel < 0 {
			return fmt.Errorf("content %s: ability '%s' has a negative cooldown", FileAbilities, a.ID)
		}
		abilityIDs[a.ID] = struct{}{}
	}
	if err := validateClasses(cfg, abilityIDs); err != nil {
		return err
	}
	itemIDs, err := validateItems(cfg)
	if err != nil {
		return err
	}
	for _, id := range cfg.StartingUnlocks.AbilityIDs {
		if _, ok := abilityIDs[id]; !ok {
			return fmt.Errorf("content %s: starting unlock references non-existent ability '%s'", FileGameSettings, id)
		}
	}
	for _, id := range cfg.StartingUnlocks.ItemIDs {
		if _, ok := itemIDs[id]; !ok {
			return fmt.Errorf("content %s: starting unlock references non-existent item '%s'", FileGameSettings, id)
		}
	}
	return nil
}

func validateSettings(cfg *game.GameConfig) error {
	if cfg.BoardSize <= 0 {
		return fmt.Errorf("content %s: board_size must be positive", FileGameSettings)
	}
	if cfg.MinPathLength < 1 {
		return fmt.Errorf("content %s: min_path_length must be at least 1", FileGameSettings)
	}
	if len(cfg.TileTypes) == 0 {
		return fmt.Errorf("content %s: tile_types is empty", FileGameSettings)
	}
	seen := map[game.TileType]struct{}{}
	nonSkull := false
	for _, tw := range cfg.TileTypes {
		if !tw.Type.Valid() {
			return fmt.Errorf("content %s: unknown tile type '%s'", FileGameSettings, tw.Type)
		}
		if _, dup := seen[tw.Type]; dup {
			return fmt.Errorf("content %s: duplicate tile type '%s'", FileGameSettings, tw.Type)
		}
		seen[tw.Type] = struct{}{}
		if tw.Weight < 0 {
			return fmt.Errorf("content %s: tile type '%s' has a negative weight", FileGameSettings, tw.Type)
		}
		if tw.Type != game.TileSkull {
			nonSkull = true
		}
	}
	if !nonSkull {
		return fmt.Errorf("content %s: tile_types needs at least one non-%s type", FileGameSettings, game.TileSkull)
	}

	sort.SliceStable(cfg.ChainBonuses, func(i, j int) bool {
		return cfg.ChainBonuses[i].Length < cfg.ChainBonuses[j].Length
	})
	prev := 1.0
	for _, cb := range cfg.ChainBonuses {
		if cb.Length < 1 {
			return fmt.Errorf("content %s: chain bonus length must be at least 1", FileGameSettings)
		}
		if cb.Multiplier < prev {
			return fmt.Errorf("content %s: chain bonus for length %d (%v) is lower than a shorter chain's", FileGameSettings, cb.Length, cb.Multiplier)
		}
		prev = cb.Multiplier
	}

	lp := cfg.LevelProgression
	if lp.BaseXP <= 0 || lp.XPMultiplier < 1 {
		return fmt.Errorf("content %s: level_progression needs base_xp > 0 and xp_multiplier >= 1", FileGameSettings)
	}
	return nil
}

func validateEnemies(cfg *game.GameConfig) error {
	known := make(map[game.EnemyTrait]struct{}, len(game.KnownTraits))
	for _, tr := range game.KnownTraits {
		known[tr] = struct{}{}
	}
	valid := make(map[game.EnemyTrait]struct{}, len(cfg.EnemyTraits))
	names := make([]string, 0, len(cfg.EnemyTraits))
	for _, tr := range cfg.EnemyTraits {
		if _, ok := known[tr]; !ok {
			return fmt.Errorf("content %s: valid_traits lists unsupported trait '%s'", FileEnemies, tr)
		}
		valid[tr] = struct{}{}
		names = append(names, string(tr))
	}
	ids := make(map[string]struct{}, len(cfg.Enemies))
	for _, e := range cfg.Enemies {
		if strings.TrimSpace(e.ID) == "" {
			return fmt.Errorf("content %s: enemy entry missing 'id'", FileEnemies)
		}
		if _, dup := ids[e.ID]; dup {
			return fmt.Errorf("content %s: duplicate enemy id '%s'", FileEnemies, e.ID)
		}
		ids[e.ID] = struct{}{}
		for _, tr := range e.Traits {
			if _, ok := valid[tr]; !ok {
				return fmt.Errorf("content %s: enemy '%s' has an invalid trait '%s'; valid traits are [%s]", FileEnemies, e.Name, tr, strings.Join(names, ", "))
			}
		}
		if e.MinDepth < 0 || e.MaxDepth < e.MinDepth {
			return fmt.Errorf("content %s: enemy '%s' has an invalid depth range [%d, %d]", FileEnemies, e.Name, e.MinDepth, e.MaxDepth)
		}
		if e.Rarity < 0 || e.BaseHP <= 0 {
			return fmt.Errorf("content %s: enemy '%s' needs base_hp > 0 and rarity >= 0", FileEnemies, e.Name)
		}
	}
	return nil
}

func validateClasses(cfg *game.GameConfig, abilityIDs map[string]struct{}) error {
	ids := make(map[string]struct{}, len(cfg.Classes))
	for _, c := range cfg.Classes {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("content %s: class entry missing 'id'", FileClasses)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("content %s: duplicate class id '%s'", FileClasses, c.ID)
		}
		ids[c.ID] = struct{}{}
		for _, id := range c.StartingAbilityIDs {
			if _, ok := abilityIDs[id]; !ok {
				return fmt.Errorf("content %s: class '%s' references non-existent starting ability '%s'", FileClasses, c.Name, id)
			}
		}
		for _, u := range c.Unlocks {
			if _, ok := abilityIDs[u.AbilityID]; !ok {
				return fmt.Errorf("content %s: class '%s' references non-existent unlock ability '%s' at level %d", FileClasses, c.Name, u.AbilityID, u.Level)
			}
		}
	}
	if len(cfg.Classes) == 0 {
		return fmt.Errorf("content %s: no classes defined", FileClasses)
	}
	return nil
}

func validateItems(cfg *game.GameConfig) (map[string]struct{}, error) {
	ids := make(map[string]struct{}, len(cfg.Items))
	for _, it := range cfg.Items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("content %s: item entry missing 'id'", FileItems)
		}
		if _, dup := ids[it.ID]; dup {
			return nil, fmt.Errorf("content %s: duplicate item id '%s'", FileItems, it.ID)
		}
		ids[it.ID] = struct{}{}
		if !it.Slot.Valid() {
			return nil, fmt.Errorf("content %s: item '%s' has invalid slot '%s'", FileItems, it.ID, it.Slot)
		}
		if len(it.UpgradePath) == 0 {
			return nil, fmt.Errorf("content %s: item '%s' has an empty upgrade_path", FileItems, it.ID)
		}
		for i, u := range it.UpgradePath {
			if u.Cost < 0 {
				return nil, fmt.Errorf("content %s: item '%s' tier %d has a negative cost", FileItems, it.ID, i+1)
			}
		}
	}
	return ids, nil
}
