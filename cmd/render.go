package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/banner/internal/config"
	"github.com/stuttgart-things/banner/internal/engine"
	apperrors "github.com/stuttgart-things/banner/internal/errors"
	"github.com/stuttgart-things/banner/internal/gradient"
	"github.com/stuttgart-things/banner/internal/palette"
	"github.com/stuttgart-things/banner/internal/params"
	"github.com/stuttgart-things/banner/internal/render"
)

// renderFlags holds the flags that are not config keys. Config-backed
// flags (palette, font, direction, ...) are read through app.cfg.
type renderFlags struct {
	colors []string
	filled bool

	// Batch input
	file string
	set  []string

	// Output configuration
	output          string
	outputDir       string
	filenamePattern string
	dryRun          bool

	// Mode control
	interactive    bool
	nonInteractive bool
}

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringP("palette", "p", palette.DefaultName, "Named palette")
	cmd.Flags().StringSliceVarP(&flags.colors, "colors", "c", nil, "Explicit color stops (comma-separated or repeated), overrides --palette")
	cmd.Flags().StringP("font", "f", "", "Font name (see 'banner fonts')")
	cmd.Flags().String("font-dir", "", "Directory with .flf fonts (selects the figlet generator)")
	cmd.Flags().String("generator", config.DefaultGenerator, "Glyph generator (figure, figlet)")
	cmd.Flags().StringP("direction", "d", config.DefaultDirection, "Gradient direction ("+strings.Join(engine.Directions(), ", ")+")")
	cmd.Flags().String("blend", config.DefaultBlend, "Color blending ("+strings.Join(gradient.Blends(), ", ")+")")
	cmd.Flags().Int("letter-spacing", 0, "Blank columns between letters")
	cmd.Flags().BoolVar(&flags.filled, "filled", false, "Render solid block glyphs")
	cmd.Flags().Duration("settle-delay", config.DefaultSettleDelay, "Pause after a filled banner")
	cmd.Flags().Duration("timeout", config.DefaultTimeout, "Overall render timeout")

	cmd.Flags().StringVar(&flags.file, "file", "", "YAML/JSON file with one or more banners")
	cmd.Flags().StringArrayVar(&flags.set, "set", nil, "Override a banner field (key=value, repeatable)")

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write all banners to this file")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Write each banner to its own file in this directory")
	cmd.Flags().StringVar(&flags.filenamePattern, "filename-pattern", defaultFilenamePattern, "Pattern for --output-dir filenames")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print what would be written without writing files")

	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Force interactive mode")
	cmd.Flags().BoolVar(&flags.nonInteractive, "non-interactive", false, "Force non-interactive mode")
}

func newRenderCmd(a *app) *cobra.Command {
	flags := &renderFlags{}

	renderCmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render text as a gradient banner",
		Long: `Renders the arguments as an ASCII-art banner colored with a gradient.

Banners can also come from a YAML/JSON file (--file) with --set overrides.
On a terminal without text, an interactive form asks for the settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, flags, args)
		},
	}
	addRenderFlags(renderCmd, flags)
	return renderCmd
}

// interactiveMode decides between prompting and rendering directly.
func (f *renderFlags) interactiveMode(args []string) bool {
	switch {
	case f.nonInteractive:
		return false
	case f.interactive:
		return true
	}
	// Auto-detect: prompt only on a terminal when nothing was given to render
	return len(args) == 0 && f.file == "" && isTerminal(os.Stdin)
}

func (f *renderFlags) outputConfig() OutputConfig {
	return OutputConfig{
		File:            f.output,
		Directory:       f.outputDir,
		FilenamePattern: f.filenamePattern,
		DryRun:          f.dryRun,
	}
}

func runRender(cmd *cobra.Command, a *app, flags *renderFlags, args []string) error {
	if flags.interactiveMode(args) {
		return runInteractive(cmd, a, flags, strings.Join(args, " "))
	}

	banners, err := collectBanners(a, flags, args)
	if err != nil {
		return err
	}

	outCfg := flags.outputConfig()
	w := cmd.OutOrStdout()
	profile := colorProfile(a.cfg.Color, w)
	if outCfg.Enabled() {
		profile = colorProfile(a.cfg.Color, nil)
	}
	r, err := a.render(profile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
	defer cancel()

	start := time.Now()
	var results []BannerResult
	for i, b := range banners {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rendering banner %d: %w", i+1, err)
		}

		req, filled := buildRequest(cmd, a, flags, b)
		if strings.TrimSpace(req.Text) == "" {
			return apperrors.InvalidInput("banner %d has no text", i+1)
		}

		if filled && !outCfg.Enabled() {
			if err := r.RenderFilled(ctx, w, req); err != nil {
				return err
			}
			continue
		}

		content, err := renderOne(r, req, filled)
		if err != nil {
			return err
		}
		if !outCfg.Enabled() {
			fmt.Fprintln(w, content)
			continue
		}
		results = append(results, BannerResult{Index: i + 1, Text: req.Text, Content: content, Filled: filled})
	}

	a.log.Debug("banners rendered", "count", len(banners), "elapsed", time.Since(start).String())
	if outCfg.Enabled() {
		return WriteResults(w, a.fs, results, outCfg)
	}
	return nil
}

func renderOne(r *render.Renderer, req render.Request, filled bool) (string, error) {
	if filled {
		return r.Filled(req)
	}
	return r.Render(req)
}

// collectBanners reads the banner file or turns the arguments into one
// banner, then applies --set overrides to every banner.
func collectBanners(a *app, flags *renderFlags, args []string) ([]params.Banner, error) {
	var banners []params.Banner
	if flags.file != "" {
		if len(args) > 0 {
			return nil, apperrors.InvalidInput("text arguments cannot be combined with --file")
		}
		bf, err := params.ParseFile(a.fs, flags.file)
		if err != nil {
			return nil, err
		}
		banners = bf.Banners
	} else {
		banners = []params.Banner{{Text: strings.Join(args, " ")}}
	}

	inline, err := params.ParseInlineParams(flags.set)
	if err != nil {
		return nil, err
	}
	for i := range banners {
		if banners[i], err = params.Apply(banners[i], inline); err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
	}
	return banners, nil
}

// buildRequest fills the gaps of b from flags and configuration. Per-banner
// colors or palette win over --colors, which wins over --palette and the
// configured palette.
func buildRequest(cmd *cobra.Command, a *app, flags *renderFlags, b params.Banner) (render.Request, bool) {
	cfg := a.cfg
	req := render.Request{
		Text:          b.Text,
		Font:          lo.CoalesceOrEmpty(b.Font, cfg.Font),
		Direction:     lo.CoalesceOrEmpty(b.Direction, cfg.Direction),
		LetterSpacing: cfg.LetterSpacing,
	}
	if b.LetterSpacing != nil {
		req.LetterSpacing = *b.LetterSpacing
	}

	switch {
	case b.Colors != nil:
		req.Colors = b.Colors
	case b.Palette != "":
		req.Palette = b.Palette
	case len(flags.colors) > 0:
		req.Colors = params.SplitColors(strings.Join(flags.colors, ","))
	case cmd.Flags().Changed("palette"):
		req.Palette = cfg.Palette
	default:
		req.Palette = a.fallbackPalette(cfg.Palette)
	}

	filled := flags.filled
	if b.Filled != nil {
		filled = *b.Filled
	}
	return req, filled
}

// requestDefaults is a request carrying only configured settings.
func requestDefaults(a *app) render.Request {
	return render.Request{
		Palette:       a.fallbackPalette(a.cfg.Palette),
		Font:          a.cfg.Font,
		Direction:     a.cfg.Direction,
		LetterSpacing: a.cfg.LetterSpacing,
	}
}

// fallbackPalette keeps a configured palette that exists and otherwise
// warns and uses the default. Palettes named on the command line or in a
// banner never fall back.
func (a *app) fallbackPalette(name string) string {
	if name == "" || a.palettes.Has(name) {
		return name
	}
	a.log.Warn("configured palette not found, using default", "palette", name, "default", palette.DefaultName)
	return palette.DefaultName
}
