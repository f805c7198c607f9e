package mines

import (
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

// String draws the chunk from its own caches, row by row:
//
//	# hidden, F flagged, * revealed mine, . revealed zero, 1-8 revealed count
//
// Counts are the same-chunk approximation and undercount at the edges.
func (c *Chunk) String() string {
	var b strings.Builder
	for y := range c.size {
		for x := range c.size {
			i := c.index(x, y)
			switch c.state[i] {
			case Hidden:
				b.WriteByte('#')
			case Flagged:
				b.WriteByte('F')
			default:
				switch {
				case c.mine[i]:
					b.WriteByte('*')
				case c.count[i] == 0:
					b.WriteByte('.')
				default:
					b.WriteByte('0' + c.count[i])
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
