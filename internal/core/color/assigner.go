// Package color builds the per-request entity color map.
package color

import (
	"fmt"

	"github.com/duotext/duotext/internal/core/model"
)

// Mode selects how entity names map to colors.
type Mode string

const (
	// ModeUniform gives every entity the same fixed color.
	ModeUniform Mode = "uniform"
	// ModeDistinct gives each unique entity name its own hue.
	ModeDistinct Mode = "distinct"
)

// DefaultUniformColor is used in uniform mode when none is configured.
const DefaultUniformColor = "hsl(55, 90%, 72%)"

const (
	saturation = 70
	lightness  = 80
)

type Assigner struct {
	Mode         Mode
	UniformColor string
}

func NewAssigner(mode Mode, uniformColor string) *Assigner {
	if uniformColor == "" {
		uniformColor = DefaultUniformColor
	}
	return &Assigner{Mode: mode, UniformColor: uniformColor}
}

// Assign maps every entity name appearing in a or b to exactly one color.
// Names are de-duplicated preserving first-seen order (a before b), so
// identical inputs always produce identical maps, and a name present in both
// lists resolves to one color.
func (s *Assigner) Assign(a, b []model.Entity) map[string]string {
	names := model.Names(append(append([]model.Entity{}, a...), b...))
	colors := make(map[string]string, len(names))

	if s.Mode == ModeUniform {
		for _, name := range names {
			colors[name] = s.UniformColor
		}
		return colors
	}

	// Evenly spaced hue rotation over the unique names.
	step := 360
	if len(names) > 0 {
		step = 360 / len(names)
	}
	for i, name := range names {
		hue := (i * step) % 360
		colors[name] = fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness)
	}
	return colors
}
