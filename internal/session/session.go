// Package session plays one game on top of a mines.World: it grants
// first-click safety, gates chords and turns mine hits into lost lives.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/grid"
	"github.com/vancomm/minefield/internal/mines"
)

var ErrGameOver = errors.New("game over")

type Status int

const (
	Playing Status = iota
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type Session struct {
	id         uuid.UUID
	world      *mines.World
	safeRadius int

	status   Status
	lives    int
	revealed int
	deaths   []grid.GlobalCell

	logger *slog.Logger
}

func New(cfg config.Game, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("unable to start session: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		id:         uuid.New(),
		safeRadius: cfg.SafeRadius,
		lives:      cfg.Lives,
	}
	s.logger = logger.With(slog.String("session", s.id.String()))

	world, err := mines.NewWorld(mines.Options{
		Seed:       cfg.Seed,
		Density:    cfg.Density,
		ChunkSize:  cfg.ChunkSize,
		FloodLimit: cfg.FloodLimit,
		Notifier:   s,
		Logger:     s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create world: %w", err)
	}
	s.world = world

	s.logger.Info("session started",
		slog.Int64("seed", cfg.Seed),
		slog.Float64("density", cfg.Density),
		slog.Int("lives", cfg.Lives),
	)
	return s, nil
}

func (s *Session) ID() uuid.UUID             { return s.id }
func (s *Session) World() *mines.World       { return s.world }
func (s *Session) Status() Status            { return s.status }
func (s *Session) Lives() int                { return s.lives }
func (s *Session) Revealed() int             { return s.revealed }
func (s *Session) Deaths() []grid.GlobalCell { return s.deaths }

// [Session] implements [mines.Notifier]
func (s *Session) MineRevealed(c grid.GlobalCell) {
	s.deaths = append(s.deaths, c)
	if s.lives > 0 {
		s.lives--
	}
	if s.lives == 0 {
		s.status = Lost
	}
	s.logger.Info("stepped on a mine",
		slog.String("cell", c.String()),
		slog.Int("lives", s.lives),
		slog.String("status", s.status.String()),
	)
}

func (s *Session) countSafe(changed []grid.GlobalCell) {
	for _, c := range changed {
		if !s.world.IsMine(c) {
			s.revealed++
		}
	}
}

// Open reveals c and floods from it. The first Open of a hidden cell
// protects the square around it beforehand.
func (s *Session) Open(c grid.GlobalCell) ([]grid.GlobalCell, error) {
	if s.status != Playing {
		return nil, ErrGameOver
	}
	if !s.world.FirstClickApplied() && s.world.GetCellState(c) == mines.Hidden {
		s.world.EnsureFirstClickSafety(c, s.safeRadius)
	}
	changed := s.world.FloodReveal(c)
	s.countSafe(changed)
	s.logger.Debug("open", slog.String("cell", c.String()), slog.Int("changed", len(changed)))
	return changed, nil
}

// Flag toggles the flag on c and returns c if its state changed.
func (s *Session) Flag(c grid.GlobalCell) ([]grid.GlobalCell, error) {
	if s.status != Playing {
		return nil, ErrGameOver
	}
	before := s.world.GetCellState(c)
	s.world.ToggleFlag(c)
	if s.world.GetCellState(c) == before {
		return nil, nil
	}
	return []grid.GlobalCell{c}, nil
}

// Chord opens every unflagged neighbor of a revealed numbered cell once
// the player has placed as many flags around it as it has mines. Anything
// else is a no-op. A chord that costs the last life stops at that mine.
func (s *Session) Chord(c grid.GlobalCell) ([]grid.GlobalCell, error) {
	if s.status != Playing {
		return nil, ErrGameOver
	}
	if s.world.GetCellState(c) != mines.Revealed || s.world.IsMine(c) {
		return nil, nil
	}
	n := s.world.NeighborCountGlobal(c)
	if n == 0 || s.world.CountFlagsAround(c) != n {
		return nil, nil
	}
	var changed []grid.GlobalCell
	for _, nb := range c.Neighbors() {
		if s.status != Playing {
			break
		}
		if s.world.GetCellState(nb) == mines.Flagged {
			continue
		}
		changed = append(changed, s.world.FloodReveal(nb)...)
	}
	s.countSafe(changed)
	s.logger.Debug("chord", slog.String("cell", c.String()), slog.Int("changed", len(changed)))
	return changed, nil
}
