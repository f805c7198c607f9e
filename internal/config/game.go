package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDensity    = 0.16
	DefaultChunkSize  = 16
	DefaultSafeRadius = 1
	DefaultLives      = 3
	DefaultFloodLimit = 1 << 16

	MaxSafeRadius = 64
)

type Game struct {
	Seed       int64   `yaml:"seed"`
	Density    float64 `yaml:"density"`
	ChunkSize  int     `yaml:"chunk_size"`
	SafeRadius int     `yaml:"safe_radius"`
	Lives      int     `yaml:"lives"`
	FloodLimit int     `yaml:"flood_limit"`
}

func Default() Game {
	return Game{
		Density:    DefaultDensity,
		ChunkSize:  DefaultChunkSize,
		SafeRadius: DefaultSafeRadius,
		Lives:      DefaultLives,
		FloodLimit: DefaultFloodLimit,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (Game, error) {
	g := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return g, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return g, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return g, nil
}

// ApplyEnv overrides fields from MINEFIELD_* environment variables.
func (g *Game) ApplyEnv() error {
	if s, ok := os.LookupEnv("MINEFIELD_SEED"); ok {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("unable to convert MINEFIELD_SEED to int: %w", err)
		}
		g.Seed = seed
	}
	if s, ok := os.LookupEnv("MINEFIELD_DENSITY"); ok {
		density, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("unable to convert MINEFIELD_DENSITY to float: %w", err)
		}
		g.Density = density
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"MINEFIELD_CHUNK_SIZE", &g.ChunkSize},
		{"MINEFIELD_SAFE_RADIUS", &g.SafeRadius},
		{"MINEFIELD_LIVES", &g.Lives},
		{"MINEFIELD_FLOOD_LIMIT", &g.FloodLimit},
	}
	for _, v := range ints {
		s, ok := os.LookupEnv(v.env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("unable to convert %s to int: %w", v.env, err)
		}
		*v.dst = n
	}
	return nil
}

// Validate rejects values that would produce a degenerate field. Nothing
// is clamped.
func (g Game) Validate() error {
	if math.IsNaN(g.Density) || g.Density < 0 || g.Density > 1 {
		return fmt.Errorf("density must be within [0, 1], got %v", g.Density)
	}
	if g.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", g.ChunkSize)
	}
	if g.SafeRadius < 0 || g.SafeRadius > MaxSafeRadius {
		return fmt.Errorf("safe radius must be within [0, %d], got %d", MaxSafeRadius, g.SafeRadius)
	}
	if g.Lives <= 0 {
		return fmt.Errorf("lives must be positive, got %d", g.Lives)
	}
	if g.FloodLimit < 0 {
		return fmt.Errorf("flood limit must not be negative, got %d", g.FloodLimit)
	}
	return nil
}

// FromEnv builds a validated Game from an optional YAML file and the
// environment. An empty path skips the file.
func FromEnv(path string) (Game, error) {
	g := Default()
	if path != "" {
		var err error
		if g, err = Load(path); err != nil {
			return g, err
		}
	}
	if err := g.ApplyEnv(); err != nil {
		return g, err
	}
	if err := g.Validate(); err != nil {
		return g, fmt.Errorf("invalid game config: %w", err)
	}
	return g, nil
}
