package mines

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/grid"
)

// Preload materializes every missing chunk in the inclusive rectangle
// spanned by from and to. Chunks are generated in parallel and inserted
// on the calling goroutine once all of them are done; on error nothing
// is inserted.
func (w *World) Preload(ctx context.Context, from, to grid.ChunkCoord) error {
	var missing []grid.ChunkCoord
	for y := min(from.Y, to.Y); y <= max(from.Y, to.Y); y++ {
		for x := min(from.X, to.X); x <= max(from.X, to.X); x++ {
			cc := grid.ChunkCoord{X: x, Y: y}
			if _, ok := w.chunks[cc]; !ok {
				missing = append(missing, cc)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var (
		generated = make([]*Chunk, len(missing))
		seed      = w.seed
		density   = w.density
		size      = w.size
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cc := range missing {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			generated[i] = NewChunk(cc, size, seed, density)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("unable to preload %v..%v: %w", from, to, err)
	}

	for _, ch := range generated {
		w.chunks[ch.coord] = ch
	}
	w.log.Debug("preloaded chunks",
		slog.Int("generated", len(generated)), slog.Int("loaded", len(w.chunks)))
	return nil
}
