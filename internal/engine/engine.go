// Package engine applies a color ramp to a glyph block using one of three
// strategies: vertical bands, horizontal sweeps per row, or a diagonal sweep
// whose stops rotate as the rows descend.
package engine

import (
	"fmt"
	"strings"

	"github.com/stuttgart-things/banner/internal/cache"
	apperrors "github.com/stuttgart-things/banner/internal/errors"
	"github.com/stuttgart-things/banner/internal/glyph"
	"github.com/stuttgart-things/banner/internal/gradient"
	"github.com/stuttgart-things/banner/internal/logger"
	"github.com/stuttgart-things/banner/internal/palette"
)

// Direction selects the coloring strategy.
type Direction string

const (
	Vertical   Direction = "vertical"
	Horizontal Direction = "horizontal"
	Diagonal   Direction = "diagonal"
)

// Directions lists the supported directions, default first.
func Directions() []string {
	return []string{string(Vertical), string(Horizontal), string(Diagonal)}
}

// ParseDirection is case-insensitive; empty means Vertical.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Vertical:
		return Vertical, nil
	case Horizontal:
		return Horizontal, nil
	case Diagonal:
		return Diagonal, nil
	}
	return "", apperrors.InvalidConfiguration("direction",
		fmt.Errorf("unknown direction %q (want one of %s)", s, strings.Join(Directions(), ", ")))
}

// Engine colorizes glyph blocks. A nil cache disables ramp memoization.
type Engine struct {
	interp gradient.Interpolator
	ramps  *cache.Cache[string, gradient.Ramp]
	log    *logger.Logger
}

// New creates an Engine.
func New(interp gradient.Interpolator, ramps *cache.Cache[string, gradient.Ramp], log *logger.Logger) *Engine {
	return &Engine{interp: interp, ramps: ramps, log: log}
}

// Colorize applies the strategy for dir and returns the rows joined by
// newlines. Blank rows are copied verbatim and never reach a ramp.
func (e *Engine) Colorize(block glyph.Block, stops palette.Stops, dir Direction) (string, error) {
	if len(stops) == 0 {
		return "", apperrors.InvalidPalette("color list is empty")
	}
	if len(block) == 0 {
		return "", nil
	}
	if allBlank(block) {
		return glyph.Join(block), nil
	}

	var (
		rows []string
		err  error
	)
	switch dir {
	case "", Vertical:
		rows, err = e.vertical(block, stops)
	case Horizontal:
		rows, err = e.horizontal(block, stops)
	case Diagonal:
		rows, err = e.diagonal(block, stops)
	default:
		_, err = ParseDirection(string(dir))
	}
	if err != nil {
		return "", err
	}
	return strings.Join(rows, "\n"), nil
}

func (e *Engine) vertical(block glyph.Block, stops palette.Stops) ([]string, error) {
	r, err := e.ramp(cache.RampKey(e.interp.Key(), stops), stops)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(block))
	copy(out, block)

	visible := make([]string, 0, len(block))
	index := make([]int, 0, len(block))
	for i, row := range block {
		if !glyph.IsBlank(row) {
			visible = append(visible, row)
			index = append(index, i)
		}
	}

	for k, row := range r.Block(visible) {
		out[index[k]] = row
	}
	return out, nil
}

func (e *Engine) horizontal(block glyph.Block, stops palette.Stops) ([]string, error) {
	r, err := e.ramp(cache.RampKey(e.interp.Key(), stops), stops)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(block))
	for i, row := range block {
		if glyph.IsBlank(row) {
			out[i] = row
			continue
		}
		out[i] = r.Line(row)
	}
	return out, nil
}

// diagonal rotates the stops for row i of n by shift = i/n * len(stops).
// n and i count blank rows too.
func (e *Engine) diagonal(block glyph.Block, stops palette.Stops) ([]string, error) {
	n := len(block)
	out := make([]string, n)
	for i, row := range block {
		if glyph.IsBlank(row) {
			out[i] = row
			continue
		}
		shift := float64(i) / float64(n) * float64(len(stops))
		shifted := ShiftStops(stops, i, n)
		r, err := e.ramp(cache.ShiftedRampKey(e.interp.Key(), stops, float64(rotation(i, n, len(stops)))), shifted)
		if err != nil {
			return nil, err
		}
		e.log.Debug("diagonal row", "row", i, "shift", shift)
		out[i] = r.Line(row)
	}
	return out, nil
}

// ShiftStops returns the stop list for row i of n on a diagonal sweep:
// shifted[j] = stops[floor(j + i/n*L) mod L].
func ShiftStops(stops palette.Stops, i, n int) palette.Stops {
	l := len(stops)
	if l == 0 || n <= 0 {
		return stops.Clone()
	}
	offset := rotation(i, n, l)
	out := make(palette.Stops, l)
	for j := range out {
		out[j] = stops[(j+offset)%l]
	}
	return out
}

// rotation is floor(i/n * l) computed in integers; j is whole, so
// floor(j + i/n*l) == j + rotation.
func rotation(i, n, l int) int {
	return (i * l) / n
}

func (e *Engine) ramp(key string, stops palette.Stops) (gradient.Ramp, error) {
	if e.ramps == nil {
		return e.interp.Build(stops)
	}
	r, hit, err := e.ramps.GetOrSet(key, func() (gradient.Ramp, error) {
		return e.interp.Build(stops)
	})
	if err != nil {
		return nil, err
	}
	if !hit {
		e.log.Debug("ramp cache miss", "key", key)
	}
	return r, nil
}

func allBlank(block glyph.Block) bool {
	for _, row := range block {
		if !glyph.IsBlank(row) {
			return false
		}
	}
	return true
}
