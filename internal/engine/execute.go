package engine

import "github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

// RemoveTiles returns a copy of b with the given cells emptied.
func RemoveTiles(b game.Board, cells []game.Position) game.Board {
	out := b.Clone()
	for _, p := range cells {
		if out.InBounds(p) {
			out[p.Row][p.Col] = nil
		}
	}
	return out
}

// CompleteTurn finishes a resolved turn once the presentation delay is over:
// the removal set is emptied and the board refilled for nextDepth. Turns that
// were not applied return the board untouched.
func CompleteTurn(res TurnResult, nextDepth int, gen *Generator) game.Board {
	if !res.Applied {
		return res.Board.Clone()
	}
	return gen.ApplyGravityAndRefill(RemoveTiles(res.Board, res.Removals), nextDepth)
}
