package mines

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/vancomm/minefield/internal/grid"
	"github.com/vancomm/minefield/internal/oracle"
)

var Log *slog.Logger = slog.Default()

// Notifier is told about every mine a reveal exposes. What happens next
// (lives, restart) is up to the implementation.
type Notifier interface {
	MineRevealed(c grid.GlobalCell)
}

type NotifierFunc func(c grid.GlobalCell)

func (f NotifierFunc) MineRevealed(c grid.GlobalCell) { f(c) }

type Options struct {
	Seed    int64
	Density float64 // probability in [0, 1]

	// ChunkSize defaults to grid.DefaultChunkSize when zero.
	ChunkSize int

	// FloodLimit caps the cells a single FloodReveal may reveal.
	// Zero means no limit; a density of 0 then floods forever.
	FloodLimit int

	Notifier Notifier
	Logger   *slog.Logger
}

func (o Options) Validate() error {
	if math.IsNaN(o.Density) || o.Density < 0 || o.Density > 1 {
		return &ConfigError{"density", fmt.Sprintf("%v is outside [0, 1]", o.Density)}
	}
	if o.ChunkSize < 0 {
		return &ConfigError{"chunk size", fmt.Sprintf("%d is not positive", o.ChunkSize)}
	}
	if o.FloodLimit < 0 {
		return &ConfigError{"flood limit", fmt.Sprintf("%d is negative", o.FloodLimit)}
	}
	return nil
}

// World is the lazily materialized infinite field of one game session.
// It is not safe for concurrent use; see [Locked].
type World struct {
	seed       int64
	density    float64
	size       int
	floodLimit int

	chunks    map[grid.ChunkCoord]*Chunk
	protected map[grid.GlobalCell]struct{}
	safeGiven bool

	notifier Notifier
	log      *slog.Logger
}

func NewWorld(opts Options) (*World, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = grid.DefaultChunkSize
	}
	if opts.Logger == nil {
		opts.Logger = Log
	}
	w := &World{
		seed:       opts.Seed,
		density:    opts.Density,
		size:       opts.ChunkSize,
		floodLimit: opts.FloodLimit,
		chunks:     make(map[grid.ChunkCoord]*Chunk, 64),
		protected:  make(map[grid.GlobalCell]struct{}),
		notifier:   opts.Notifier,
		log:        opts.Logger,
	}
	return w, nil
}

func (w *World) Seed() int64      { return w.seed }
func (w *World) Density() float64 { return w.density }
func (w *World) ChunkSize() int   { return w.size }

func (w *World) chunkAt(g grid.GlobalCell) (*Chunk, grid.LocalCoord) {
	cc, l := grid.Split(g, w.size)
	ch, ok := w.chunks[cc]
	if !ok {
		ch = NewChunk(cc, w.size, w.seed, w.density)
		w.chunks[cc] = ch
		w.log.Debug("generated chunk", slog.Any("chunk", cc), slog.Int("loaded", len(w.chunks)))
	}
	return ch, l
}

// Chunk returns an already materialized chunk without generating it.
func (w *World) Chunk(cc grid.ChunkCoord) (*Chunk, bool) {
	ch, ok := w.chunks[cc]
	return ch, ok
}

// Chunks lists every materialized chunk ordered by row, then column.
func (w *World) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(w.chunks))
	for _, ch := range w.chunks {
		out = append(out, ch)
	}
	slices.SortFunc(out, func(a, b *Chunk) int {
		if c := cmp.Compare(a.coord.Y, b.coord.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.coord.X, b.coord.X)
	})
	return out
}

func (w *World) Len() int { return len(w.chunks) }

// EnsureFirstClickSafety protects the square of the given radius around c
// from ever holding a mine. Only the first call has an effect; it must be
// made before the first reveal of the session.
func (w *World) EnsureFirstClickSafety(c grid.GlobalCell, radius int) {
	if w.safeGiven {
		return
	}
	w.safeGiven = true
	for _, p := range grid.Square(c, radius) {
		w.protected[p] = struct{}{}
	}
	w.log.Debug("first click protected",
		slog.String("cell", c.String()), slog.Int("radius", radius))
}

func (w *World) FirstClickApplied() bool { return w.safeGiven }

// IsMine consults the protected set first and the oracle second. Chunk
// caches are not used since they may predate protection.
func (w *World) IsMine(c grid.GlobalCell) bool {
	if _, ok := w.protected[c]; ok {
		return false
	}
	return oracle.IsMine(w.seed, c.X, c.Y, w.density)
}

// NeighborCountGlobal is the authoritative number of mines around c,
// correct across chunk borders and protection.
func (w *World) NeighborCountGlobal(c grid.GlobalCell) int {
	var n int
	for _, nb := range c.Neighbors() {
		if w.IsMine(nb) {
			n++
		}
	}
	return n
}

func (w *World) GetCellState(c grid.GlobalCell) CellState {
	ch, l := w.chunkAt(c)
	return ch.State(l)
}

func (w *World) CountFlagsAround(c grid.GlobalCell) int {
	var n int
	for _, nb := range c.Neighbors() {
		if w.GetCellState(nb) == Flagged {
			n++
		}
	}
	return n
}

func (w *World) notify(c grid.GlobalCell) {
	w.log.Info("mine revealed", slog.String("cell", c.String()))
	if w.notifier != nil {
		w.notifier.MineRevealed(c)
	}
}
