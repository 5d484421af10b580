// Package gradient builds color ramps over a list of stops and applies them
// to text.
package gradient

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/colorgrad"

	apperrors "github.com/stuttgart-things/banner/internal/errors"
	"github.com/stuttgart-things/banner/internal/palette"
)

// Ramp maps a position in [0,1] to a color and applies itself to text.
type Ramp interface {
	At(t float64) colorful.Color
	// Line colors one row left to right across the whole ramp.
	Line(row string) string
	// Block gives each row a single color, first stop at the top row and
	// last stop at the bottom row.
	Block(rows []string) []string
}

// Interpolator builds ramps. Building is the expensive step worth caching.
// Key identifies everything besides the stops that shapes a built ramp, so
// ramps from different interpolators never share a cache entry.
type Interpolator interface {
	Build(stops palette.Stops) (Ramp, error)
	Key() string
}

// Blend selects the color space ramps interpolate in.
type Blend string

const (
	BlendLuv   Blend = "luv"
	BlendRGB   Blend = "rgb"
	BlendOklab Blend = "oklab"
)

// Blends lists the supported blend modes.
func Blends() []string {
	return []string{string(BlendLuv), string(BlendRGB), string(BlendOklab)}
}

// NewInterpolator returns the interpolator for blend. Empty means luv.
func NewInterpolator(blend Blend, painter *Painter) (Interpolator, error) {
	switch Blend(strings.ToLower(string(blend))) {
	case "", BlendLuv:
		return &luvInterpolator{painter: painter}, nil
	case BlendRGB:
		return &gradInterpolator{painter: painter, blend: BlendRGB, mode: colorgrad.BlendRgb}, nil
	case BlendOklab:
		return &gradInterpolator{painter: painter, blend: BlendOklab, mode: colorgrad.BlendOklab}, nil
	}
	return nil, apperrors.InvalidConfiguration("blend", fmt.Errorf("unknown blend %q", blend))
}

type ramp struct {
	at      func(t float64) colorful.Color
	painter *Painter
}

func (r *ramp) At(t float64) colorful.Color {
	return r.at(clamp01(t))
}

func (r *ramp) Line(row string) string {
	runes := []rune(row)
	width := float64(len(runes))

	var out strings.Builder
	for x, ch := range runes {
		if unicode.IsSpace(ch) {
			out.WriteRune(ch)
			continue
		}
		out.WriteString(r.painter.Paint(r.At(float64(x)/width), string(ch)))
	}
	return out.String()
}

func (r *ramp) Block(rows []string) []string {
	out := make([]string, len(rows))
	last := float64(len(rows) - 1)
	for k, row := range rows {
		t := 0.0
		if last > 0 {
			t = float64(k) / last
		}
		out[k] = r.painter.PaintRow(r.At(t), row)
	}
	return out
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// luvInterpolator blends neighbouring stops in CIE L*u*v*.
type luvInterpolator struct {
	painter *Painter
}

func (l *luvInterpolator) Key() string {
	return string(BlendLuv) + "/" + l.painter.Key()
}

func (l *luvInterpolator) Build(stops palette.Stops) (Ramp, error) {
	if len(stops) == 0 {
		return nil, apperrors.InvalidPalette("color list is empty")
	}
	colors := stops.Clone()
	return &ramp{painter: l.painter, at: func(t float64) colorful.Color {
		if len(colors) == 1 {
			return colors[0]
		}
		seg := t * float64(len(colors)-1)
		i := int(seg)
		if i >= len(colors)-1 {
			return colors[len(colors)-1]
		}
		return colors[i].BlendLuv(colors[i+1], seg-float64(i)).Clamped()
	}}, nil
}

// gradInterpolator delegates to colorgrad.
type gradInterpolator struct {
	painter *Painter
	blend   Blend
	mode    colorgrad.BlendMode
}

func (g *gradInterpolator) Key() string {
	return string(g.blend) + "/" + g.painter.Key()
}

func (g *gradInterpolator) Build(stops palette.Stops) (Ramp, error) {
	if len(stops) == 0 {
		return nil, apperrors.InvalidPalette("color list is empty")
	}
	hexes := stops.Hex()
	if len(hexes) == 1 {
		hexes = append(hexes, hexes[0])
	}
	grad, err := colorgrad.NewGradient().
		HtmlColors(hexes...).
		Mode(g.mode).
		Build()
	if err != nil {
		return nil, apperrors.InvalidPalette("building gradient: %v", err)
	}
	return &ramp{painter: g.painter, at: func(t float64) colorful.Color {
		r, gr, b, _ := grad.At(t).RGBA255()
		return colorful.Color{R: float64(r) / 255, G: float64(gr) / 255, B: float64(b) / 255}
	}}, nil
}
