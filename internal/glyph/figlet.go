package glyph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mbndr/figlet4go"
	"github.com/spf13/afero"

	apperrors "github.com/stuttgart-things/banner/internal/errors"
)

var figletBuiltins = []string{"standard", "larry3d"}

// FigletGenerator renders with figlet4go, which can load .flf font files
// from a directory in addition to its builtin fonts.
type FigletGenerator struct {
	render *figlet4go.AsciiRender
	fonts  []string
}

// NewFigletGenerator loads every .flf file found in dir. An empty dir only
// provides the builtin fonts.
func NewFigletGenerator(fs afero.Fs, dir string) (*FigletGenerator, error) {
	g := &FigletGenerator{
		render: figlet4go.NewAsciiRender(),
		fonts:  append([]string(nil), figletBuiltins...),
	}
	if dir == "" {
		return g, nil
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, apperrors.InvalidConfiguration("font directory", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".flf") {
			continue
		}
		data, err := afero.ReadFile(fs, filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, apperrors.InvalidConfiguration("font directory", err)
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := g.render.LoadBindataFont(data, name); err != nil {
			return nil, apperrors.FontNotFound(name, err)
		}
		g.fonts = append(g.fonts, name)
	}
	sort.Strings(g.fonts)
	return g, nil
}

// Generate renders text in font. figlet4go falls back to its default font
// for unknown names, so the name is checked against Fonts first.
func (g *FigletGenerator) Generate(text, font string, layout Layout) (Block, error) {
	if font == "" {
		font = DefaultFont
	}
	name, ok := g.lookup(font)
	if !ok {
		return nil, apperrors.FontNotFound(font, fmt.Errorf("not one of %s", strings.Join(g.fonts, ", ")))
	}
	font = name
	return compose(text, layout, func(s string) (Block, error) {
		opts := figlet4go.NewRenderOptions()
		opts.FontName = font
		out, err := g.render.RenderOpts(s, opts)
		if err != nil {
			return nil, apperrors.FontNotFound(font, err)
		}
		return Split(out), nil
	})
}

// lookup finds the loaded font name matching font case-insensitively.
func (g *FigletGenerator) lookup(font string) (string, bool) {
	for _, name := range g.fonts {
		if strings.EqualFold(name, font) {
			return name, true
		}
	}
	return "", false
}

// Fonts lists builtin and loaded fonts.
func (g *FigletGenerator) Fonts() []string {
	return append([]string(nil), g.fonts...)
}
