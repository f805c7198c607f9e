// Package grid maps between global cells of the infinite plane and
// (chunk, local) pairs. Everything here is pure integer math.
package grid

import "fmt"

const DefaultChunkSize = 16

type GlobalCell struct {
	X, Y int
}

func (c GlobalCell) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

type ChunkCoord struct {
	X, Y int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("chunk(%d:%d)", c.X, c.Y)
}

// LocalCoord addresses a cell inside a chunk, both components in [0, size).
type LocalCoord struct {
	X, Y int
}

// GlobalToChunk is floored division: GlobalToChunk(-1, 16) == -1.
func GlobalToChunk(g, size int) int {
	q := g / size
	if g%size < 0 {
		q--
	}
	return q
}

// GlobalToLocal is floored modulo: GlobalToLocal(-1, 16) == 15.
func GlobalToLocal(g, size int) int {
	m := g % size
	if m < 0 {
		m += size
	}
	return m
}

func ChunkLocalToGlobal(c, l, size int) int {
	return c*size + l
}

func Split(g GlobalCell, size int) (ChunkCoord, LocalCoord) {
	return ChunkCoord{GlobalToChunk(g.X, size), GlobalToChunk(g.Y, size)},
		LocalCoord{GlobalToLocal(g.X, size), GlobalToLocal(g.Y, size)}
}

func Join(c ChunkCoord, l LocalCoord, size int) GlobalCell {
	return GlobalCell{
		X: ChunkLocalToGlobal(c.X, l.X, size),
		Y: ChunkLocalToGlobal(c.Y, l.Y, size),
	}
}

// Neighbors returns the 8 surrounding cells in row-major order.
func (c GlobalCell) Neighbors() [8]GlobalCell {
	var (
		out [8]GlobalCell
		i   int
	)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out[i] = GlobalCell{c.X + dx, c.Y + dy}
			i++
		}
	}
	return out
}

// MaxSquareRadius bounds the radius accepted by [Square].
const MaxSquareRadius = 1 << 10

// Square lists every cell of [x-r, x+r] × [y-r, y+r], row by row.
// A negative radius yields nothing. Square panics if radius exceeds
// [MaxSquareRadius].
func Square(center GlobalCell, radius int) []GlobalCell {
	if radius < 0 {
		return nil
	}
	if radius > MaxSquareRadius {
		panic(fmt.Sprintf("grid: square radius %d exceeds %d", radius, MaxSquareRadius))
	}
	side := 2*radius + 1
	cells := make([]GlobalCell, 0, side*side)
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			cells = append(cells, GlobalCell{x, y})
		}
	}
	return cells
}
