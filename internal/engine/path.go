package engine

import (
	"math"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
)

// Flat per-tile amounts for the non-attack path effects.
const (
	armorPerShield = 5
	healPerPotion  = 10
)

// IsAdjacent reports whether a and b are 8-directional neighbours.
func IsAdjacent(a, b game.Position) bool {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1 && dr+dc > 0
}

// selectable reports whether a tile may be part of a path.
func selectable(t *game.Tile) bool {
	return t != nil && !t.IsDefeated()
}

// PathPreview is the projected outcome of a path, shown while dragging.
type PathPreview struct {
	Type       game.TileType `json:"type"`
	Count      int           `json:"count"`
	Value      int           `json:"value"`
	Multiplier float64       `json:"multiplier"`
}

// pathEffectValue computes the value a chain of n tiles of the locked type
// produces, together with the chain bonus used. Buffs are read, never
// consumed, so preview and commit share this formula.
func pathEffectValue(locked game.TileType, n int, eff game.EffectiveStats, cfg *game.GameConfig) (int, float64) {
	bonus := ChainBonusFor(cfg, n)
	switch {
	case locked.IsAttack():
		mult := 1.0
		if eff.HasBuff(game.BuffDoubleAttack) {
			mult = 2.0
		}
		return int(math.Floor(float64(eff.Attack*n) * bonus * mult)), bonus
	case locked == game.TileShield:
		return int(math.Floor(float64(armorPerShield*n) * bonus)), bonus
	case locked == game.TilePotion:
		return int(math.Floor(float64(healPerPotion*n) * bonus)), bonus
	case locked == game.TileCoin:
		return int(math.Floor(float64(n) * bonus * goldMultiplier(eff))), bonus
	}
	return 0, bonus
}

func goldMultiplier(eff game.EffectiveStats) float64 {
	m := eff.GoldMultiplier
	if m == 0 {
		m = 1.0
	}
	if eff.HasBuff(game.BuffDoubleGold) {
		m *= 2.0
	}
	return m
}

// CalculatePathPreview projects the value of path without touching board or
// stats. It returns nil for paths below the minimum length.
func CalculatePathPreview(b game.Board, path []game.Position, eff game.EffectiveStats, cfg *game.GameConfig) *PathPreview {
	if len(path) < cfg.MinPathLength || len(path) == 0 {
		return nil
	}
	first := b.At(path[0])
	if first == nil {
		return nil
	}
	value, bonus := pathEffectValue(first.Type, len(path), eff, cfg)
	return &PathPreview{Type: first.Type, Count: len(path), Value: value, Multiplier: bonus}
}

// ValidPath reports whether path could have been built by a drag: at least
// MinPathLength distinct, in-bounds, selectable cells, each adjacent to the
// previous one and type-compatible with the first.
func ValidPath(b game.Board, path []game.Position, cfg *game.GameConfig) bool {
	if len(path) == 0 || len(path) < cfg.MinPathLength {
		return false
	}
	first := b.At(path[0])
	if !selectable(first) {
		return false
	}
	seen := make(positionSet, len(path))
	for i, p := range path {
		t := b.At(p)
		if !selectable(t) || seen.has(p) || !t.Type.CompatibleWith(first.Type) {
			return false
		}
		if i > 0 && !IsAdjacent(path[i-1], p) {
			return false
		}
		seen[p] = struct{}{}
	}
	return true
}

// DragState is the state of a PathBuilder.
type DragState string

const (
	DragIdle     DragState = "idle"
	DragDragging DragState = "dragging"
)

// PathBuilder turns pointer events into a path: Idle → Dragging → Idle.
type PathBuilder struct {
	state   DragState
	path    []game.Position
	preview *PathPreview
}

// NewPathBuilder returns an idle builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{state: DragIdle}
}

// State returns the current drag state.
func (pb *PathBuilder) State() DragState { return pb.state }

// Path returns a copy of the path built so far.
func (pb *PathBuilder) Path() []game.Position {
	return append([]game.Position(nil), pb.path...)
}

// Preview returns the preview for the current path, or nil.
func (pb *PathBuilder) Preview() *PathPreview { return pb.preview }

// Press starts a drag on a non-empty cell. It reports whether the drag began.
func (pb *PathBuilder) Press(b game.Board, pos game.Position) bool {
	if !selectable(b.At(pos)) {
		return false
	}
	pb.state = DragDragging
	pb.path = []game.Position{pos}
	pb.preview = nil
	return true
}

// Enter handles the pointer entering pos while dragging. Re-entering the
// second-to-last cell undoes the last step; cells already in the path are
// ignored; otherwise the cell is appended when adjacent and compatible.
// It reports whether the path changed.
func (pb *PathBuilder) Enter(b game.Board, pos game.Position, eff game.EffectiveStats, cfg *game.GameConfig) bool {
	if pb.state != DragDragging || len(pb.path) == 0 {
		return false
	}
	last := pb.path[len(pb.path)-1]
	if pos == last {
		return false
	}
	changed := false
	if len(pb.path) > 1 && pos == pb.path[len(pb.path)-2] {
		pb.path = pb.path[:len(pb.path)-1]
		changed = true
	} else if !newPositionSet(pb.path).has(pos) {
		locked := b.At(pb.path[0])
		next := b.At(pos)
		if locked != nil && selectable(next) && next.Type.CompatibleWith(locked.Type) && IsAdjacent(last, pos) {
			pb.path = append(pb.path, pos)
			changed = true
		}
	}
	if changed {
		pb.preview = CalculatePathPreview(b, pb.path, eff, cfg)
	}
	return changed
}

// Release ends the drag. It returns the path for commit when it reaches the
// minimum length; the builder always returns to Idle with no path.
func (pb *PathBuilder) Release(cfg *game.GameConfig) ([]game.Position, bool) {
	path := pb.path
	wasDragging := pb.state == DragDragging
	pb.state = DragIdle
	pb.path = nil
	pb.preview = nil
	if !wasDragging || len(path) < cfg.MinPathLength {
		return nil, false
	}
	return path, true
}
