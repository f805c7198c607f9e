package mines

import (
	"sync"

	"github.com/vancomm/minefield/internal/grid"
)

// Locked serializes access to a World shared between goroutines.
// Anything that may materialize a chunk or change a cell takes the write
// lock. Pure queries share the read lock.
//
// The world's Notifier runs under the write lock and must not call back
// into the same Locked.
type Locked struct {
	mu sync.RWMutex
	w  *World
}

func NewLocked(w *World) *Locked {
	return &Locked{w: w}
}

// Do runs fn with exclusive access.
func (l *Locked) Do(fn func(w *World)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.w)
}

// View runs fn with shared access. fn must not call anything that can
// materialize a chunk (GetCellState, CountFlagsAround, reveals, flags).
func (l *Locked) View(fn func(w *World)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.w)
}

func (l *Locked) IsMine(c grid.GlobalCell) (mine bool) {
	l.View(func(w *World) { mine = w.IsMine(c) })
	return
}

func (l *Locked) NeighborCountGlobal(c grid.GlobalCell) (n int) {
	l.View(func(w *World) { n = w.NeighborCountGlobal(c) })
	return
}

func (l *Locked) GetCellState(c grid.GlobalCell) (s CellState) {
	l.Do(func(w *World) { s = w.GetCellState(c) })
	return
}

func (l *Locked) CountFlagsAround(c grid.GlobalCell) (n int) {
	l.Do(func(w *World) { n = w.CountFlagsAround(c) })
	return
}

func (l *Locked) EnsureFirstClickSafety(c grid.GlobalCell, radius int) {
	l.Do(func(w *World) { w.EnsureFirstClickSafety(c, radius) })
}

func (l *Locked) RevealCell(c grid.GlobalCell) (safe bool) {
	l.Do(func(w *World) { safe = w.RevealCell(c) })
	return
}

func (l *Locked) ToggleFlag(c grid.GlobalCell) {
	l.Do(func(w *World) { w.ToggleFlag(c) })
}

func (l *Locked) FloodReveal(c grid.GlobalCell) (changed []grid.GlobalCell) {
	l.Do(func(w *World) { changed = w.FloodReveal(c) })
	return
}

func (l *Locked) RevealNeighborsSafely(c grid.GlobalCell, changed []grid.GlobalCell) []grid.GlobalCell {
	l.Do(func(w *World) { changed = w.RevealNeighborsSafely(c, changed) })
	return changed
}

func (l *Locked) Chunks() (out []*Chunk) {
	l.View(func(w *World) { out = w.Chunks() })
	return
}

func (l *Locked) Len() (n int) {
	l.View(func(w *World) { n = w.Len() })
	return
}
