package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Styles for terminal output
var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

func newRootCmd(a *app) *cobra.Command {
	flags := &renderFlags{}

	rootCmd := &cobra.Command{
		Use:   "banner [text...]",
		Short: "Gradient ASCII-art banners for the terminal",
		Long: `Banner renders text as ASCII-art glyphs colored with a gradient.

Without a subcommand the arguments are rendered as one banner, exactly like
"banner render".`,
		Example: `  banner hello
  banner -p vice -d diagonal "hello world"
  banner --filled -c "#ff5f6d,#ffc371" sunset
  banner --file banners.yaml --set direction=horizontal`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && flags.file == "" && !flags.interactive {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderLogo(colorProfile(a.cfg.Color, out)))
				return cmd.Usage()
			}
			return runRender(cmd, a, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/banner/banner.yaml or ./banner.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("color", "auto", "Color output (auto, always, never)")
	rootCmd.PersistentFlags().String("palettes-file", "", "User palettes file (default: $XDG_CONFIG_HOME/banner/palettes.yaml)")

	addRenderFlags(rootCmd, flags)

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newPalettesCmd(a))
	rootCmd.AddCommand(newFontsCmd(a))
	rootCmd.AddCommand(newBenchCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

func Execute() {
	rootCmd := newRootCmd(newApp(afero.NewOsFs()))

	if isTerminal(os.Stdout) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiMagenta + cc.Bold + cc.Underline,
			Commands:      cc.HiCyan + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
