package mines

import (
	"github.com/gammazero/deque"

	"github.com/vancomm/minefield/internal/grid"
)

// RevealCell reveals c alone, with no flood. It returns false when c was a
// hidden mine, in which case the notifier has been told.
func (w *World) RevealCell(c grid.GlobalCell) bool {
	ch, l := w.chunkAt(c)
	if ch.State(l) != Hidden {
		return true
	}
	ch.RevealCell(l)
	if w.IsMine(c) {
		w.notify(c)
		return false
	}
	return true
}

func (w *World) ToggleFlag(c grid.GlobalCell) {
	ch, l := w.chunkAt(c)
	ch.ToggleFlag(l)
}

// FloodReveal reveals start and, breadth first, every hidden safe cell
// connected to it through cells with no neighboring mines. Numbered cells
// are revealed but not expanded. Flagged cells and mines are never touched
// by the expansion.
//
// Starting on a hidden mine reveals only that mine and notifies.
//
// The returned cells are exactly those that changed to Revealed, in
// discovery order.
func (w *World) FloodReveal(start grid.GlobalCell) []grid.GlobalCell {
	if w.IsMine(start) {
		ch, l := w.chunkAt(start)
		if ch.State(l) != Hidden {
			return nil
		}
		ch.RevealCell(l)
		w.notify(start)
		return []grid.GlobalCell{start}
	}

	var (
		changed []grid.GlobalCell
		queue   deque.Deque[grid.GlobalCell]
	)
	queue.PushBack(start)

	for queue.Len() > 0 {
		if w.floodLimit > 0 && len(changed) >= w.floodLimit {
			w.log.Warn("flood limit reached",
				"start", start.String(), "revealed", len(changed), "pending", queue.Len())
			break
		}

		c := queue.PopFront()
		ch, l := w.chunkAt(c)
		if ch.State(l) != Hidden {
			continue
		}
		ch.RevealCell(l)
		changed = append(changed, c)

		if w.NeighborCountGlobal(c) > 0 {
			continue
		}
		for _, nb := range c.Neighbors() {
			if !w.IsMine(nb) && w.GetCellState(nb) == Hidden {
				queue.PushBack(nb)
			}
		}
	}

	return changed
}

// RevealNeighborsSafely flood-reveals every unflagged neighbor of c and
// appends the changed cells to changed. Callers chord only when
// CountFlagsAround(c) == NeighborCountGlobal(c).
func (w *World) RevealNeighborsSafely(c grid.GlobalCell, changed []grid.GlobalCell) []grid.GlobalCell {
	for _, nb := range c.Neighbors() {
		if w.GetCellState(nb) == Flagged {
			continue
		}
		changed = append(changed, w.FloodReveal(nb)...)
	}
	return changed
}
