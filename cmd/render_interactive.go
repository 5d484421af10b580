package cmd

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/banner/internal/engine"
	"github.com/stuttgart-things/banner/internal/render"
)

const randomMarker = "🎲 Random"

// interactiveBanner holds the form values for one banner
type interactiveBanner struct {
	Text      string
	Palette   string
	Direction string
	Font      string
	Filled    bool
}

// runInteractive runs the interactive render flow
func runInteractive(cmd *cobra.Command, a *app, flags *renderFlags, text string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderLogo(colorProfile(a.cfg.Color, out)))

	r, err := a.render(colorProfile(a.cfg.Color, out))
	if err != nil {
		return err
	}

	values := interactiveBanner{
		Text:      text,
		Palette:   a.fallbackPalette(a.cfg.Palette),
		Direction: a.cfg.Direction,
		Font:      lo.CoalesceOrEmpty(a.cfg.Font, r.Fonts()[0]),
		Filled:    flags.filled,
	}

	var content string
	for {
		if err := collectSettings(&values, a.palettes.Names(), r.Fonts()); err != nil {
			return err
		}
		values.Palette = resolveRandom(values.Palette, a.palettes.Names())

		req := render.Request{
			Text:          values.Text,
			Palette:       values.Palette,
			Font:          values.Font,
			Direction:     values.Direction,
			LetterSpacing: a.cfg.LetterSpacing,
		}

		content, err = renderOne(r, req, values.Filled)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}

		ShowPreview(out, fmt.Sprintf("Preview: %s / %s / %s", values.Palette, values.Direction, values.Font), content)

		action, err := ReviewBanner()
		if err != nil {
			return err
		}
		switch action {
		case ReviewActionEdit:
			continue // Loop back to the settings form
		case ReviewActionCancel:
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		break
	}

	// Use output flags when given, otherwise ask
	outCfg := flags.outputConfig()
	if !outCfg.Enabled() {
		cfg, err := runOutputForm()
		if err != nil {
			return err
		}
		if cfg == nil {
			fmt.Fprintln(out, content)
			return nil
		}
		outCfg = *cfg
	}

	result := BannerResult{Index: 1, Text: values.Text, Content: content, Filled: values.Filled}
	if err := WriteResults(out, a.fs, []BannerResult{result}, outCfg); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	fmt.Fprintln(out, successStyle.Render("done"))
	return nil
}

// collectSettings shows the banner settings form
func collectSettings(values *interactiveBanner, palettes, fonts []string) error {
	paletteOptions := append([]huh.Option[string]{huh.NewOption(randomMarker, randomMarker)},
		huh.NewOptions(palettes...)...)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Text *").
				Description("Text to render, \\n starts a new line").
				Value(&values.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("text is required")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Palette").
				Options(paletteOptions...).
				Value(&values.Palette),

			huh.NewSelect[string]().
				Title("Direction").
				Options(huh.NewOptions(engine.Directions()...)...).
				Value(&values.Direction),

			huh.NewSelect[string]().
				Title("Font").
				Options(huh.NewOptions(fonts...)...).
				Height(8).
				Value(&values.Font),

			huh.NewConfirm().
				Title("Filled glyphs?").
				Affirmative("Filled").
				Negative("Outline").
				Value(&values.Filled),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}
	values.Text = strings.ReplaceAll(values.Text, `\n`, "\n")
	return nil
}

// resolveRandom picks a palette when the random option was chosen
func resolveRandom(choice string, palettes []string) string {
	if choice != randomMarker || len(palettes) == 0 {
		return choice
	}
	return palettes[rand.Intn(len(palettes))]
}

// runOutputForm runs the interactive output configuration form.
// It returns nil when the banner should only be printed.
func runOutputForm() (*OutputConfig, error) {
	var (
		saveFile bool   = false
		path     string = "banner.txt"
	)

	saveForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save to file?").
				Description("Otherwise the banner is printed").
				Affirmative("Yes").
				Negative("No").
				Value(&saveFile),
		),
	)

	if err := saveForm.Run(); err != nil {
		return nil, err
	}

	if !saveFile {
		return nil, nil
	}

	pathForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file").
				Value(&path),
		),
	)

	if err := pathForm.Run(); err != nil {
		return nil, err
	}

	return &OutputConfig{File: path}, nil
}
