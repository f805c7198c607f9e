package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vancomm/minefield/internal/grid"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

type rect struct {
	X, Y, W, H int
}

type game struct {
	session *session.Session
	view    rect
	out     io.Writer
	logger  *slog.Logger
}

func newGame(s *session.Session, out io.Writer, logger *slog.Logger) *game {
	return &game{
		session: s,
		view:    rect{X: -15, Y: -8, W: 30, H: 16},
		out:     out,
		logger:  logger,
	}
}

// preload generates every chunk the view touches ahead of the first move.
func (g *game) preload(ctx context.Context) error {
	size := g.session.World().ChunkSize()
	from := grid.ChunkCoord{
		X: grid.GlobalToChunk(g.view.X, size),
		Y: grid.GlobalToChunk(g.view.Y, size),
	}
	to := grid.ChunkCoord{
		X: grid.GlobalToChunk(g.view.X+g.view.W-1, size),
		Y: grid.GlobalToChunk(g.view.Y+g.view.H-1, size),
	}
	return g.session.World().Preload(ctx, from, to)
}

// render draws the view:
//
//	# hidden, F flag, * mine, . empty, 1-8 mine count
func (g *game) render() string {
	var (
		b strings.Builder
		w = g.session.World()
	)
	for y := g.view.Y; y < g.view.Y+g.view.H; y++ {
		for x := g.view.X; x < g.view.X+g.view.W; x++ {
			c := grid.GlobalCell{X: x, Y: y}
			switch w.GetCellState(c) {
			case mines.Hidden:
				b.WriteByte('#')
			case mines.Flagged:
				b.WriteByte('F')
			case mines.Revealed:
				if w.IsMine(c) {
					b.WriteByte('*')
				} else if n := w.NeighborCountGlobal(c); n == 0 {
					b.WriteByte('.')
				} else {
					b.WriteByte(byte('0' + n))
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// readLines feeds lines from in until in is exhausted or ctx is done.
// lines is closed on exit, after the scanner error (if any) is sent.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}

func (g *game) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, scanErr := readLines(ctx, in)

	fmt.Fprint(g.out, g.render())
	fmt.Fprintln(g.out, g.status())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			changed, err := g.executeCommand(line)
			switch {
			case errors.Is(err, errQuit):
				return nil
			case errors.Is(err, session.ErrGameOver):
				fmt.Fprintln(g.out, "game over")
				return nil
			case err != nil:
				fmt.Fprintln(g.out, "error:", err)
				continue
			}
			g.logger.Debug("command", slog.String("line", line), slog.Int("changed", len(changed)))
			fmt.Fprint(g.out, g.render())
			fmt.Fprintln(g.out, g.status())
			if g.session.Status() == session.Lost {
				fmt.Fprintln(g.out, "game over")
				return nil
			}
		}
	}
}
