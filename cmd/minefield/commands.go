package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/grid"
)

var errQuit = errors.New("quit")

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"o": 2, // open
	"f": 2, // flag
	"c": 2, // chord
	"v": 4, // move view: x y width height
	"s": 0, // status
	"q": 0, // quit
}

func parseInts(strs []string) ([]int, error) {
	out := make([]int, len(strs))
	for i, s := range strs {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		out[i] = n
	}
	return out, nil
}

// executeCommand applies one input line to the game and returns the cells
// whose display must be refreshed.
func (g *game) executeCommand(c string) (changed []grid.GlobalCell, err error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil, nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return nil, errors.New("invalid number of arguments")
	}
	args, err := parseInts(parts[1:])
	if err != nil {
		return nil, err
	}

	switch parts[0] {
	case "o":
		return g.session.Open(grid.GlobalCell{X: args[0], Y: args[1]})
	case "f":
		return g.session.Flag(grid.GlobalCell{X: args[0], Y: args[1]})
	case "c":
		return g.session.Chord(grid.GlobalCell{X: args[0], Y: args[1]})
	case "v":
		if args[2] <= 0 || args[3] <= 0 {
			return nil, errors.New("view size must be positive")
		}
		g.view = rect{X: args[0], Y: args[1], W: args[2], H: args[3]}
		return nil, nil
	case "s":
		return nil, nil
	case "q":
		return nil, errQuit
	}
	return nil, errors.New("invalid command")
}

func (g *game) status() string {
	s := g.session
	w := s.World()
	return fmt.Sprintf("%s: lives %d, revealed %d, chunks %d (seed %d, density %.2f)",
		s.Status(), s.Lives(), s.Revealed(), w.Len(), w.Seed(), w.Density())
}
