package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stuttgart-things/banner/internal/render"
)

func newFontsCmd(a *app) *cobra.Command {
	var (
		fontsOutput string
		sample      string
	)

	fontsCmd := &cobra.Command{
		Use:   "fonts",
		Short: "List available fonts",
		Long:  `Lists the fonts of the configured glyph generator. With --sample every font renders the sample text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r, err := a.render(colorProfile(a.cfg.Color, out))
			if err != nil {
				return err
			}
			fonts := r.Fonts()

			switch fontsOutput {
			case "json":
				return printJSON(out, fonts)
			case "table", "":
			default:
				return fmt.Errorf("unknown output format %q (want table or json)", fontsOutput)
			}

			if sample != "" {
				for _, font := range fonts {
					fmt.Fprintln(out, progressStyle.Render(font))
					if err := printSample(out, r, a, font, sample); err != nil {
						a.log.Warn("font cannot render sample", "font", font, "error", err.Error())
					}
				}
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "FONT\tGENERATOR\n")
			fmt.Fprintf(w, "----\t---------\n")
			for _, font := range fonts {
				fmt.Fprintf(w, "%s\t%s\n", font, a.cfg.Generator)
			}
			return w.Flush()
		},
	}

	fontsCmd.Flags().StringVarP(&fontsOutput, "output", "o", "table", "Output format (table, json)")
	fontsCmd.Flags().StringVar(&sample, "sample", "", "Render this text in every font")
	return fontsCmd
}

func printSample(w io.Writer, r *render.Renderer, a *app, font, text string) error {
	req := requestDefaults(a)
	req.Text, req.Font = text, font
	out, err := r.Render(req)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}
