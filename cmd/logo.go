package cmd

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/stuttgart-things/banner/internal/engine"
	"github.com/stuttgart-things/banner/internal/glyph"
	"github.com/stuttgart-things/banner/internal/gradient"
	"github.com/stuttgart-things/banner/internal/palette"
)

const logoRaw = `
██████╗  █████╗ ███╗   ██╗███╗   ██╗███████╗██████╗
██╔══██╗██╔══██╗████╗  ██║████╗  ██║██╔════╝██╔══██╗
██████╔╝███████║██╔██╗ ██║██╔██╗ ██║█████╗  ██████╔╝
██╔══██╗██╔══██║██║╚██╗██║██║╚██╗██║██╔══╝  ██╔══██╗
██████╔╝██║  ██║██║ ╚████║██║ ╚████║███████╗██║  ██║
╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═══╝╚══════╝╚═╝  ╚═╝
`

var logoColors = []string{
	"#ff00ff", // neon magenta
	"#00ffff", // electric cyan
}

// renderLogo sweeps the logo left to right through the logo colors.
func renderLogo(profile termenv.Profile) string {
	block := glyph.Split(strings.TrimPrefix(logoRaw, "\n"))

	stops, err := palette.ParseColors(logoColors)
	if err != nil {
		return logoRaw
	}
	interp, err := gradient.NewInterpolator(gradient.BlendLuv, gradient.NewPainter(profile))
	if err != nil {
		return logoRaw
	}

	out, err := engine.New(interp, nil, nil).Colorize(block, stops, engine.Horizontal)
	if err != nil {
		return logoRaw
	}
	return out + "\n"
}
