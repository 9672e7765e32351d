package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// positionSet is a lookup set of board positions.
type positionSet map[game.Position]struct{}

func newPositionSet(path []game.Position) positionSet {
	s := make(positionSet, len(path))
	for _, p := range path {
		s[p] = struct{}{}
	}
	return s
}

func (s positionSet) has(p game.Position) bool {
	_, ok := s[p]
	return ok
}

// forEachTile visits every occupied cell in row-major order.
func forEachTile(b game.Board, fn func(p game.Position, t *game.Tile)) {
	for r := range b {
		for c, t := range b[r] {
			if t != nil {
				fn(game.Position{Row: r, Col: c}, t)
			}
		}
	}
}

// consumeBuff removes the first buff with the given id. Stacked copies stay
// active so each use consumes exactly one instance.
func consumeBuff(buffs []game.Buff, id string) []game.Buff {
	out := make([]game.Buff, 0, len(buffs))
	removed := false
	for _, b := range buffs {
		if !removed && b.ID == id {
			removed = true
			continue
		}
		out = append(out, b)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
