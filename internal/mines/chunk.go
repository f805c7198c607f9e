package mines

import (
	"github.com/vancomm/minefield/internal/grid"
	"github.com/vancomm/minefield/internal/oracle"
)

// Chunk is one size×size tile of the plane. The mine layout and neighbor
// counts are fixed at construction; only cell states change afterwards.
//
// A chunk knows nothing about first-click protection. Its caches reflect
// the raw oracle answer and its neighbor counts only look inside the
// chunk, so cells on the border undercount. [World] never trusts them.
type Chunk struct {
	coord grid.ChunkCoord
	size  int

	state []CellState
	mine  []bool
	count []uint8

	safe         int // non-mine cells
	revealed     int
	revealedSafe int
	finished     bool
}

func NewChunk(coord grid.ChunkCoord, size int, seed int64, density float64) *Chunk {
	n := size * size
	c := &Chunk{
		coord: coord,
		size:  size,
		state: make([]CellState, n), // all Hidden
		mine:  make([]bool, n),
		count: make([]uint8, n),
	}

	for y := range size {
		for x := range size {
			g := grid.Join(coord, grid.LocalCoord{X: x, Y: y}, size)
			if oracle.IsMine(seed, g.X, g.Y, density) {
				c.mine[c.index(x, y)] = true
			} else {
				c.safe++
			}
		}
	}

	for y := range size {
		for x := range size {
			i := c.index(x, y)
			if c.mine[i] {
				continue
			}
			var v uint8
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					xx, yy := x+dx, y+dy
					if (dx != 0 || dy != 0) &&
						0 <= xx && xx < size && 0 <= yy && yy < size &&
						c.mine[c.index(xx, yy)] {
						v++
					}
				}
			}
			c.count[i] = v
		}
	}

	return c
}

func (c *Chunk) index(x, y int) int {
	return y*c.size + x
}

func (c *Chunk) Coord() grid.ChunkCoord { return c.coord }
func (c *Chunk) Size() int              { return c.size }

func (c *Chunk) State(l grid.LocalCoord) CellState {
	return c.state[c.index(l.X, l.Y)]
}

func (c *Chunk) CachedMine(l grid.LocalCoord) bool {
	return c.mine[c.index(l.X, l.Y)]
}

func (c *Chunk) CachedNeighborCount(l grid.LocalCoord) int {
	return int(c.count[c.index(l.X, l.Y)])
}

// Revealed is the number of revealed cells, mines included.
func (c *Chunk) Revealed() int { return c.revealed }

// Finished reports whether every non-mine cell has been revealed.
// Once true it stays true.
func (c *Chunk) Finished() bool { return c.finished }

// RevealCell reports false only when a hidden mine was just revealed.
// Cells that are already revealed or flagged are left alone and reported safe.
func (c *Chunk) RevealCell(l grid.LocalCoord) bool {
	i := c.index(l.X, l.Y)
	if c.state[i] != Hidden {
		return true
	}
	c.state[i] = Revealed
	c.revealed++
	if c.mine[i] {
		return false
	}
	c.revealedSafe++
	if c.revealedSafe == c.safe {
		c.finished = true
	}
	return true
}

// ToggleFlag flips Hidden and Flagged. Revealed cells are unaffected.
func (c *Chunk) ToggleFlag(l grid.LocalCoord) {
	i := c.index(l.X, l.Y)
	switch c.state[i] {
	case Hidden:
		c.state[i] = Flagged
	case Flagged:
		c.state[i] = Hidden
	}
}
