package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/muesli/termenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/banner/internal/engine"
	"github.com/stuttgart-things/banner/internal/glyph"
	"github.com/stuttgart-things/banner/internal/gradient"
	"github.com/stuttgart-things/banner/internal/palette"
	"github.com/stuttgart-things/banner/internal/registry"
)

const swatch = "████████████████"

// paletteRow is one line of 'palettes list'
type paletteRow struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Colors      []string `json:"colors"`
	Description string   `json:"description,omitempty"`
}

func newPalettesCmd(a *app) *cobra.Command {
	palettesCmd := &cobra.Command{
		Use:     "palettes",
		Aliases: []string{"palette"},
		Short:   "List and manage color palettes",
		Long:    `Lists builtin and user palettes. User palettes are stored in the palettes file and may shadow builtins.`,
	}

	palettesCmd.AddCommand(newPalettesListCmd(a))
	palettesCmd.AddCommand(newPalettesAddCmd(a))
	palettesCmd.AddCommand(newPalettesRemoveCmd(a))
	return palettesCmd
}

func newPalettesListCmd(a *app) *cobra.Command {
	var listOutput string

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := paletteRows(a)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch listOutput {
			case "json":
				return printJSON(out, rows)
			case "table", "":
				printPaletteTable(out, rows, colorProfile(a.cfg.Color, out))
				return nil
			}
			return fmt.Errorf("unknown output format %q (want table or json)", listOutput)
		},
	}
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table, json)")
	return listCmd
}

func newPalettesAddCmd(a *app) *cobra.Command {
	var description string

	addCmd := &cobra.Command{
		Use:   "add NAME COLOR...",
		Short: "Add or replace a user palette",
		Example: `  banner palettes add sunset "#ff5f6d" "#ffc371"
  banner palettes add sea navy,teal,cyan`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.PalettesFile
			reg, err := registry.LoadOrNew(a.fs, path)
			if err != nil {
				return err
			}

			entry := registry.PaletteEntry{
				Name:        args[0],
				Colors:      lo.FlatMap(args[1:], func(c string, _ int) []string { return strings.Split(c, ",") }),
				Description: description,
				CreatedAt:   time.Now().UTC().Format(time.RFC3339),
			}
			entry.Colors = lo.Compact(lo.Map(entry.Colors, func(c string, _ int) string { return strings.TrimSpace(c) }))

			if err := registry.AddEntry(reg, entry); err != nil {
				return err
			}
			if err := registry.Save(a.fs, path, reg); err != nil {
				return err
			}

			a.log.Info("palette saved", "palette", strings.ToLower(args[0]), "file", path)
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Saved palette %s to %s", strings.ToLower(args[0]), path)))
			return nil
		},
	}
	addCmd.Flags().StringVar(&description, "description", "", "Short description")
	return addCmd
}

func newPalettesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a user palette",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.PalettesFile
			reg, err := registry.Load(a.fs, path)
			if err != nil {
				return err
			}
			if err := registry.RemoveEntry(reg, args[0]); err != nil {
				return err
			}
			if err := registry.Save(a.fs, path, reg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Removed palette %s", strings.ToLower(args[0]))))
			return nil
		},
	}
}

// paletteRows lists every palette in the table, marking the ones that
// come from the user palettes file.
func paletteRows(a *app) ([]paletteRow, error) {
	reg, err := registry.LoadOrNew(a.fs, a.cfg.PalettesFile)
	if err != nil {
		return nil, err
	}

	rows := make([]paletteRow, 0, len(a.palettes.Names()))
	for _, name := range a.palettes.Names() {
		colors, _ := a.palettes.Colors(name)
		row := paletteRow{Name: name, Source: "builtin", Colors: colors}
		if e := registry.FindEntry(reg, name); e != nil {
			row.Source = "user"
			row.Description = e.Description
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func printPaletteTable(out io.Writer, rows []paletteRow, profile termenv.Profile) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tCOLORS\tPREVIEW")
	fmt.Fprintln(w, "----\t------\t------\t-------")

	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Source, strings.Join(r.Colors, ","), paletteSwatch(r.Colors, profile))
	}

	w.Flush()
}

// paletteSwatch sweeps a bar of block characters through colors.
func paletteSwatch(colors []string, profile termenv.Profile) string {
	stops, err := palette.ParseColors(colors)
	if err != nil {
		return ""
	}
	interp, err := gradient.NewInterpolator(gradient.BlendLuv, gradient.NewPainter(profile))
	if err != nil {
		return ""
	}
	out, err := engine.New(interp, nil, nil).Colorize(glyph.Block{swatch}, stops, engine.Horizontal)
	if err != nil {
		return ""
	}
	return out
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
