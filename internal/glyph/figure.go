package glyph

import (
	"fmt"
	"strings"

	"github.com/common-nighthawk/go-figure"

	apperrors "github.com/stuttgart-things/banner/internal/errors"
)

// DefaultFont is the figlet font used when none is requested.
const DefaultFont = "standard"

var figureFonts = []string{
	"banner", "big", "block", "bubble", "digital", "doom", "larry3d", "mini",
	"script", "shadow", "slant", "small", "smscript", "smshadow", "smslant",
	"speed", "standard", "starwars", "term",
}

// FigureGenerator renders with the fonts embedded in go-figure.
type FigureGenerator struct{}

// NewFigureGenerator returns the default generator.
func NewFigureGenerator() *FigureGenerator {
	return &FigureGenerator{}
}

// Generate renders text. go-figure panics on unknown fonts; that panic is
// reported as FontNotFound.
func (g *FigureGenerator) Generate(text, font string, layout Layout) (Block, error) {
	if font == "" {
		font = DefaultFont
	}
	return compose(text, layout, func(s string) (b Block, err error) {
		defer func() {
			if r := recover(); r != nil {
				b = nil
				err = apperrors.FontNotFound(font, fmt.Errorf("%v", r))
			}
		}()
		fig := figure.NewFigure(s, strings.ToLower(font), false)
		return Block(fig.Slicify()), nil
	})
}

// Fonts lists commonly used fonts shipped with go-figure.
func (g *FigureGenerator) Fonts() []string {
	return append([]string(nil), figureFonts...)
}
