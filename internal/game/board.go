package game

// Position addresses a board cell, 0-indexed.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a square grid of cells; nil marks an empty cell waiting for refill.
type Board [][]*Tile

// NewBoard returns an empty size×size board.
func NewBoard(size int) Board {
	b := make(Board, size)
	for r := range b {
		b[r] = make([]*Tile, size)
	}
	return b
}

// Size returns the side length of the board.
func (b Board) Size() int { return len(b) }

// InBounds reports whether p addresses a cell of b.
func (b Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < len(b) && p.Col >= 0 && p.Col < len(b[p.Row])
}

// At returns the tile at p, or nil when p is empty or out of bounds.
func (b Board) At(p Position) *Tile {
	if !b.InBounds(p) {
		return nil
	}
	return b[p.Row][p.Col]
}

// Clone deep-copies the board so callers never alias tiles between states.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for r := range b {
		out[r] = make([]*Tile, len(b[r]))
		for c, t := range b[r] {
			out[r][c] = t.Clone()
		}
	}
	return out
}

// Full reports whether every cell holds a tile.
func (b Board) Full() bool {
	for r := range b {
		for _, t := range b[r] {
			if t == nil {
				return false
			}
		}
	}
	return true
}
