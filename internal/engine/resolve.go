package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// TurnResult is the outcome of one committed path. Board still holds every
// tile; Removals lists the cells CompleteTurn will empty.
type TurnResult struct {
	Applied      bool             `json:"applied"`
	Board        game.Board       `json:"board"`
	Stats        game.PlayerStats `json:"stats"`
	Log          []string         `json:"log"`
	PathType     game.TileType    `json:"path_type,omitempty"`
	PathValue    int              `json:"path_value"`
	Defeated     []Defeat         `json:"defeated,omitempty"`
	LevelsGained int              `json:"levels_gained"`
	Removals     []game.Position  `json:"removals,omitempty"`
}

// LeveledUp reports whether the turn crossed at least one level threshold.
func (r TurnResult) LeveledUp() bool { return r.LevelsGained > 0 }

// Dead reports whether the player ended the turn without HP.
func (r TurnResult) Dead() bool { return r.Applied && r.Stats.HP <= 0 }

// ResolveTurn runs the committed path through every turn phase in order:
// path effect, enemy healing, enemy attacks, status upkeep and level-ups.
// Inputs are never mutated. A path that could not have been built by a drag
// leaves board and stats unchanged and Applied false.
func ResolveTurn(b game.Board, base game.PlayerStats, eff game.EffectiveStats, path []game.Position, cfg *game.GameConfig) TurnResult {
	if !ValidPath(b, path, cfg) {
		return TurnResult{Board: b.Clone(), Stats: base.Clone(), Log: []string{}}
	}
	res := TurnResult{Applied: true}

	pe := ResolvePathEffect(b, base, eff, path, cfg)
	res.PathType, res.PathValue, res.Defeated = pe.Type, pe.Value, pe.Defeated
	log := append([]string{}, pe.Log...)

	board, healLog := ResolveEnemyHealing(pe.Board)
	log = append(log, healLog...)

	stats, attackLog := ResolveEnemyAttacks(board, pe.Stats, eff, path)
	log = append(log, attackLog...)

	stats, tickLog := TickStatus(stats)
	log = append(log, tickLog...)

	stats, levels, levelLog := ResolveLevelUps(stats, cfg)
	log = append(log, levelLog...)

	res.Board = board
	res.Stats = stats
	res.Log = log
	res.LevelsGained = levels
	res.Removals = Removals(board, path)
	return res
}

// Removals returns the path cells plus every defeated Skull, each once, path
// order first then row-major.
func Removals(b game.Board, path []game.Position) []game.Position {
	seen := make(positionSet, len(path))
	out := make([]game.Position, 0, len(path))
	for _, p := range path {
		if !b.InBounds(p) || seen.has(p) {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	forEachTile(b, func(p game.Position, t *game.Tile) {
		if t.IsDefeated() && !seen.has(p) {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	})
	return out
}
