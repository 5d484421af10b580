package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/banner/internal/cache"
	"github.com/stuttgart-things/banner/internal/config"
	"github.com/stuttgart-things/banner/internal/glyph"
	"github.com/stuttgart-things/banner/internal/gradient"
	"github.com/stuttgart-things/banner/internal/logger"
	"github.com/stuttgart-things/banner/internal/palette"
	"github.com/stuttgart-things/banner/internal/registry"
	"github.com/stuttgart-things/banner/internal/render"
)

// boundFlags are the command flags that double as config keys.
var boundFlags = []string{
	"palette", "font", "font-dir", "generator", "direction", "blend",
	"color", "letter-spacing", "settle-delay", "timeout", "palettes-file",
}

// app is the state one command invocation shares: configuration, logger,
// the process-wide cache manager and the palette table.
type app struct {
	fs         afero.Fs
	configFile string
	logLevel   string

	cfg      *config.Config
	log      *logger.Logger
	cache    *cache.Manager
	palettes *palette.Table

	renderer *render.Renderer
	profile  termenv.Profile
}

func newApp(fs afero.Fs) *app {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &app{fs: fs}
}

// load resolves configuration for cmd and prepares the logger, cache and
// palettes. It runs once per invocation from PersistentPreRunE.
func (a *app) load(cmd *cobra.Command) error {
	loader := config.NewLoader(a.fs, a.configFile)
	if err := loader.BindFlags(cmd.Flags(), boundFlags...); err != nil {
		return err
	}
	if a.logLevel != "" {
		loader.Set("log.level", a.logLevel)
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.New(logger.Options{
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Pretty,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log = log
	if used := loader.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", "file", used)
	}

	if a.cache == nil {
		a.cache = cache.NewManager(cfg.Cache.Glyph, cfg.Cache.Ramp, a.log)
	}

	a.palettes = palette.NewTable()
	reg, err := registry.LoadOrNew(a.fs, cfg.PalettesFile)
	if err != nil {
		a.log.Warn("ignoring user palettes", "file", cfg.PalettesFile, "error", err.Error())
		return nil
	}
	if err := registry.Apply(reg, a.palettes); err != nil {
		a.log.Warn("ignoring user palettes", "file", cfg.PalettesFile, "error", err.Error())
	}
	return nil
}

// render returns the renderer for profile, reusing the last one when the
// profile is unchanged. Renderers share the cache; ramp keys carry the
// interpolator key, so profiles never see each other's ramps.
func (a *app) render(profile termenv.Profile) (*render.Renderer, error) {
	if a.renderer != nil && a.profile == profile {
		return a.renderer, nil
	}

	gen, err := a.generator()
	if err != nil {
		return nil, err
	}
	interp, err := gradient.NewInterpolator(gradient.Blend(a.cfg.Blend), gradient.NewPainter(profile))
	if err != nil {
		return nil, err
	}

	r, err := render.New(render.Options{
		Palettes:     a.palettes,
		Generator:    gen,
		Interpolator: interp,
		Cache:        a.cache,
		Logger:       a.log,
		SettleDelay:  a.cfg.SettleDelay,
	})
	if err != nil {
		return nil, err
	}
	a.renderer, a.profile = r, profile
	return r, nil
}

func (a *app) generator() (glyph.Generator, error) {
	if a.cfg.Generator == "figlet" || a.cfg.FontDir != "" {
		return glyph.NewFigletGenerator(a.fs, a.cfg.FontDir)
	}
	return glyph.NewFigureGenerator(), nil
}

// colorProfile maps the --color mode to a profile for output written to w.
func colorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case "never":
		return termenv.Ascii
	case "always":
		return termenv.TrueColor
	}

	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).EnvColorProfile()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
