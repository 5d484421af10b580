// Package render ties palette, font and direction resolution to the glyph
// generator, the caches and the coloring engine.
package render

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/stuttgart-things/banner/internal/cache"
	"github.com/stuttgart-things/banner/internal/engine"
	apperrors "github.com/stuttgart-things/banner/internal/errors"
	"github.com/stuttgart-things/banner/internal/glyph"
	"github.com/stuttgart-things/banner/internal/gradient"
	"github.com/stuttgart-things/banner/internal/logger"
	"github.com/stuttgart-things/banner/internal/palette"
)

// Settle delay bounds for the filled path.
const (
	DefaultSettleDelay = 50 * time.Millisecond
	MinSettleDelay     = 30 * time.Millisecond
	MaxSettleDelay     = 100 * time.Millisecond
)

// Request describes one banner.
type Request struct {
	Text string `yaml:"text" json:"text"`
	// Palette names an entry of the palette table. Ignored when Colors is non-nil.
	Palette       string   `yaml:"palette" json:"palette"`
	Colors        []string `yaml:"colors" json:"colors"`
	Font          string   `yaml:"font" json:"font"`
	Direction     string   `yaml:"direction" json:"direction"`
	LetterSpacing int      `yaml:"letterSpacing" json:"letterSpacing"`
}

// Options wires a Renderer. Nil fields get defaults, except Cache: a nil
// Cache renders without memoization.
type Options struct {
	Palettes     *palette.Table
	Generator    glyph.Generator
	Interpolator gradient.Interpolator
	Cache        *cache.Manager
	Logger       *logger.Logger
	SettleDelay  time.Duration
}

// Renderer produces colored banners. It holds no state of its own beyond
// the injected collaborators.
type Renderer struct {
	palettes  *palette.Table
	generator glyph.Generator
	engine    *engine.Engine
	cache     *cache.Manager
	log       *logger.Logger
	settle    time.Duration
}

// New builds a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Palettes == nil {
		opts.Palettes = palette.NewTable()
	}
	if opts.Generator == nil {
		opts.Generator = glyph.NewFigureGenerator()
	}
	if opts.Interpolator == nil {
		interp, err := gradient.NewInterpolator(gradient.BlendLuv, gradient.NewPainter(termenv.TrueColor))
		if err != nil {
			return nil, err
		}
		opts.Interpolator = interp
	}

	var ramps *cache.Cache[string, gradient.Ramp]
	if opts.Cache != nil {
		ramps = opts.Cache.Ramps
	}

	return &Renderer{
		palettes:  opts.Palettes,
		generator: opts.Generator,
		engine:    engine.New(opts.Interpolator, ramps, opts.Logger),
		cache:     opts.Cache,
		log:       opts.Logger,
		settle:    ClampSettleDelay(opts.SettleDelay),
	}, nil
}

// ClampSettleDelay keeps d within [MinSettleDelay, MaxSettleDelay]; zero
// means DefaultSettleDelay.
func ClampSettleDelay(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultSettleDelay
	case d < MinSettleDelay:
		return MinSettleDelay
	case d > MaxSettleDelay:
		return MaxSettleDelay
	}
	return d
}

// Render returns the outlined banner for req. Empty text renders to "".
func (r *Renderer) Render(req Request) (string, error) {
	stops, dir, err := r.resolve(req)
	if err != nil {
		return "", err
	}
	if req.Text == "" {
		return "", nil
	}

	block, err := r.glyphs(req)
	if err != nil {
		return "", err
	}
	return r.engine.Colorize(block, stops, dir)
}

// Palettes exposes the palette table the renderer resolves names against.
func (r *Renderer) Palettes() *palette.Table {
	return r.palettes
}

// Fonts lists the generator's fonts.
func (r *Renderer) Fonts() []string {
	return r.generator.Fonts()
}

func (r *Renderer) resolve(req Request) (palette.Stops, engine.Direction, error) {
	if err := (glyph.Layout{LetterSpacing: req.LetterSpacing}).Validate(); err != nil {
		return nil, "", err
	}
	dir, err := engine.ParseDirection(req.Direction)
	if err != nil {
		return nil, "", err
	}
	stops, err := r.palettes.Resolve(req.Palette, req.Colors)
	if err != nil {
		return nil, "", err
	}
	return stops, dir, nil
}

func (r *Renderer) glyphs(req Request) (glyph.Block, error) {
	font := strings.TrimSpace(req.Font)
	if font == "" {
		font = glyph.DefaultFont
	}
	key := glyph.Key{Text: req.Text, Font: font, LetterSpacing: req.LetterSpacing}
	generate := func() (glyph.Block, error) {
		b, err := r.generator.Generate(req.Text, font, glyph.Layout{LetterSpacing: req.LetterSpacing})
		if err != nil {
			return nil, interpretGeneratorError(font, err)
		}
		return b, nil
	}

	if r.cache == nil {
		return generate()
	}
	b, hit, err := r.cache.Glyphs.GetOrSet(key, generate)
	if err != nil {
		return nil, err
	}
	if !hit {
		r.log.Debug("glyph cache miss", "text", req.Text, "font", font)
	}
	return b, nil
}

// interpretGeneratorError keeps typed errors and treats anything else the
// generator reports as a font rejection.
func interpretGeneratorError(font string, err error) error {
	var typed *apperrors.Error
	if stderrors.As(err, &typed) {
		return err
	}
	return apperrors.FontNotFound(font, err)
}
