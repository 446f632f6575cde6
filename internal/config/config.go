// Package config holds the classifier settings: the target color, the
// per-channel tolerance and the table of ignored screen regions.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultTolerance is the relative per-channel margin used by the matcher.
const DefaultTolerance = 0.10

// Classifier is the process-wide configuration passed to the frame classifier.
type Classifier struct {
	TargetColor    types.RGB      `yaml:"target_color"`
	Tolerance      float64        `yaml:"tolerance"`
	IgnoredRegions []types.Region `yaml:"ignored_regions"`
}

// Default returns the settings tuned for 2560x1440 captures: the enemy
// health bar red, with the HUD elements masked out.
func Default() Classifier {
	return Classifier{
		TargetColor: types.RGB{222, 35, 28},
		Tolerance:   DefaultTolerance,
		IgnoredRegions: []types.Region{
			{Name: "friendly team members", TopLeft: types.Coordinate{X: 0, Y: 0}, BottomRight: types.Coordinate{X: 339, Y: 346}},
			{Name: "game status", TopLeft: types.Coordinate{X: 691, Y: 0}, BottomRight: types.Coordinate{X: 1869, Y: 100}},
			{Name: "enemy team members", TopLeft: types.Coordinate{X: 2178, Y: 0}, BottomRight: types.Coordinate{X: 2560, Y: 352}},
			{Name: "health bar", TopLeft: types.Coordinate{X: 0, Y: 1216}, BottomRight: types.Coordinate{X: 564, Y: 1440}},
			{Name: "minimap", TopLeft: types.Coordinate{X: 2079, Y: 960}, BottomRight: types.Coordinate{X: 2560, Y: 1440}},
		},
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default values; an explicit empty ignored_regions list clears the table.
func Load(path string) (Classifier, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the tolerance range and region coordinates. Inverted
// regions are accepted; they simply never match.
func (c *Classifier) Validate() error {
	if math.IsNaN(c.Tolerance) || c.Tolerance <= 0 || c.Tolerance > 1 {
		return fmt.Errorf("tolerance must be in (0, 1], got %v", c.Tolerance)
	}
	for i, r := range c.IgnoredRegions {
		if r.TopLeft.X < 0 || r.TopLeft.Y < 0 || r.BottomRight.X < 0 || r.BottomRight.Y < 0 {
			return fmt.Errorf("region %d (%s): %w", i, r.Name, errNegativeCoordinate)
		}
	}
	return nil
}

var errNegativeCoordinate = errors.New("coordinates must be non-negative")
