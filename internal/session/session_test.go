package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/grid"
	"github.com/vancomm/minefield/internal/mines"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newSession(t *testing.T, modify func(g *config.Game)) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 42
	if modify != nil {
		modify(&cfg)
	}
	s, err := New(cfg, discard)
	require.NoError(t, err)
	return s
}

func cell(x, y int) grid.GlobalCell {
	return grid.GlobalCell{X: x, Y: y}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Density = 3
	_, err := New(cfg, discard)
	assert.Error(t, err)
}

func TestFirstOpenIsSafe(t *testing.T) {
	s := newSession(t, func(g *config.Game) { g.Density = 1 })

	changed, err := s.Open(cell(10, -10))
	require.NoError(t, err)
	assert.Len(t, changed, 9)
	assert.Equal(t, Playing, s.Status())
	assert.Equal(t, config.DefaultLives, s.Lives())
	assert.Equal(t, 9, s.Revealed())
	assert.True(t, s.World().FirstClickApplied())
}

func TestDeathsCostLives(t *testing.T) {
	s := newSession(t, func(g *config.Game) {
		g.Density = 1
		g.Lives = 2
		g.SafeRadius = 0
	})

	_, err := s.Open(cell(0, 0))
	require.NoError(t, err)

	changed, err := s.Open(cell(5, 5))
	require.NoError(t, err)
	assert.Equal(t, []grid.GlobalCell{cell(5, 5)}, changed)
	assert.Equal(t, 1, s.Lives())
	assert.Equal(t, Playing, s.Status())

	// revealing the same mine again costs nothing
	_, err = s.Open(cell(5, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Lives())

	_, err = s.Open(cell(6, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Lives())
	assert.Equal(t, Lost, s.Status())
	assert.Equal(t, []grid.GlobalCell{cell(5, 5), cell(6, 5)}, s.Deaths())
	assert.Equal(t, 1, s.Revealed())

	_, err = s.Open(cell(7, 5))
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Flag(cell(7, 5))
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Chord(cell(0, 0))
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestFlag(t *testing.T) {
	s := newSession(t, nil)

	changed, err := s.Flag(cell(3, 3))
	require.NoError(t, err)
	assert.Equal(t, []grid.GlobalCell{cell(3, 3)}, changed)
	assert.Equal(t, mines.Flagged, s.World().GetCellState(cell(3, 3)))

	changed, err = s.Flag(cell(3, 3))
	require.NoError(t, err)
	assert.Len(t, changed, 1)
	assert.Equal(t, mines.Hidden, s.World().GetCellState(cell(3, 3)))
}

func TestFlagRevealedCell(t *testing.T) {
	s := newSession(t, nil)
	_, err := s.Open(cell(0, 0))
	require.NoError(t, err)

	changed, err := s.Flag(cell(0, 0))
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, mines.Revealed, s.World().GetCellState(cell(0, 0)))
}

func TestChordGating(t *testing.T) {
	s := newSession(t, func(g *config.Game) {
		g.Density = 1
		g.SafeRadius = 0
	})
	w := s.World()
	c := cell(0, 0)
	nbs := c.Neighbors()

	// hidden cells are not chorded
	changed, err := s.Chord(c)
	require.NoError(t, err)
	assert.Empty(t, changed)

	_, err = s.Open(c)
	require.NoError(t, err)
	require.Equal(t, 8, w.NeighborCountGlobal(c))

	// not enough flags
	for _, nb := range nbs[:7] {
		_, err = s.Flag(nb)
		require.NoError(t, err)
	}
	changed, err = s.Chord(c)
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, mines.Hidden, w.GetCellState(nbs[7]))
	assert.Empty(t, s.Deaths())

	// every mine flagged: nothing left to open, nothing explodes
	_, err = s.Flag(nbs[7])
	require.NoError(t, err)
	changed, err = s.Chord(c)
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Empty(t, s.Deaths())
}

func TestChordOpensNeighbors(t *testing.T) {
	s := newSession(t, func(g *config.Game) {
		g.Seed = 2
		g.Density = 0.2
		g.SafeRadius = 0
	})
	w := s.World()

	var c grid.GlobalCell
	for x := range 1000 {
		c = cell(x, 0)
		if !w.IsMine(c) && w.NeighborCountGlobal(c) > 0 {
			break
		}
	}
	_, err := s.Open(c)
	require.NoError(t, err)
	for _, nb := range c.Neighbors() {
		if w.IsMine(nb) {
			_, err = s.Flag(nb)
			require.NoError(t, err)
		}
	}

	before := s.Revealed()
	changed, err := s.Chord(c)
	require.NoError(t, err)
	assert.NotEmpty(t, changed)
	assert.Equal(t, before+len(changed), s.Revealed())
	assert.Equal(t, Playing, s.Status())
	for _, nb := range c.Neighbors() {
		assert.NotEqual(t, mines.Hidden, w.GetCellState(nb))
	}
}

func TestChordStopsAtLastLife(t *testing.T) {
	s := newSession(t, func(g *config.Game) {
		g.Seed = 7
		g.Density = 0.5
		g.SafeRadius = 0
		g.Lives = 1
	})
	w := s.World()
	c := cell(0, 0)
	for _, m := range []grid.GlobalCell{cell(-1, -1), cell(0, -1), cell(1, -1), cell(1, 0), cell(1, 1)} {
		require.True(t, w.IsMine(m), "%v", m)
	}
	for _, safe := range []grid.GlobalCell{c, cell(-1, 0), cell(-1, 1), cell(0, 1)} {
		require.False(t, w.IsMine(safe), "%v", safe)
	}

	_, err := s.Open(c)
	require.NoError(t, err)
	require.Equal(t, 5, w.NeighborCountGlobal(c))

	// two wrong flags leave (-1,-1) and (1,0) unflagged
	for _, f := range []grid.GlobalCell{cell(0, -1), cell(1, -1), cell(1, 1), cell(-1, 0), cell(-1, 1)} {
		_, err = s.Flag(f)
		require.NoError(t, err)
	}

	changed, err := s.Chord(c)
	require.NoError(t, err)
	assert.Equal(t, []grid.GlobalCell{cell(-1, -1)}, changed)
	assert.Equal(t, Lost, s.Status())
	assert.Equal(t, []grid.GlobalCell{cell(-1, -1)}, s.Deaths())
	assert.Equal(t, mines.Hidden, w.GetCellState(cell(1, 0)))
	assert.Equal(t, mines.Hidden, w.GetCellState(cell(0, 1)))
}

func TestFirstOpenOnFlagKeepsSafety(t *testing.T) {
	s := newSession(t, func(g *config.Game) { g.Density = 1 })
	w := s.World()

	_, err := s.Flag(cell(0, 0))
	require.NoError(t, err)
	changed, err := s.Open(cell(0, 0))
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.False(t, w.FirstClickApplied())

	changed, err = s.Open(cell(4, 4))
	require.NoError(t, err)
	assert.Len(t, changed, 9)
	assert.True(t, w.FirstClickApplied())
	assert.Empty(t, s.Deaths())
}

func TestNewRejectsHugeSafeRadius(t *testing.T) {
	cfg := config.Default()
	cfg.SafeRadius = 100000
	_, err := New(cfg, discard)
	assert.ErrorContains(t, err, "safe radius")
}

func TestSessionIDsDiffer(t *testing.T) {
	a := newSession(t, nil)
	b := newSession(t, nil)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "lost", Lost.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}
