package gradient

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Painter applies a foreground color to text for a fixed color profile.
type Painter struct {
	renderer *lipgloss.Renderer
	profile  termenv.Profile
}

// NewPainter binds a painter to profile. The profile is set explicitly so
// output never depends on where the process happens to be attached.
func NewPainter(profile termenv.Profile) *Painter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &Painter{renderer: r, profile: profile}
}

// Profile returns the painter's color profile.
func (p *Painter) Profile() termenv.Profile {
	return p.profile
}

// Paint colors s.
func (p *Painter) Paint(c colorful.Color, s string) string {
	if s == "" || p.profile == termenv.Ascii {
		return s
	}
	return p.renderer.NewStyle().Foreground(lipgloss.Color(c.Clamped().Hex())).Render(s)
}

// Key names the painter's profile, e.g. "truecolor".
func (p *Painter) Key() string {
	switch p.profile {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	}
	return "ascii"
}

// PaintRow colors each run of visible runes in row with c and leaves the
// whitespace between them untouched.
func (p *Painter) PaintRow(c colorful.Color, row string) string {
	var out strings.Builder
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(p.Paint(c, run.String()))
			run.Reset()
		}
	}
	for _, r := range row {
		if unicode.IsSpace(r) {
			flush()
			out.WriteRune(r)
			continue
		}
		run.WriteRune(r)
	}
	flush()
	return out.String()
}

// ParseProfile maps a profile name to a termenv profile.
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(name) {
	case "truecolor", "24bit":
		return termenv.TrueColor, nil
	case "256", "ansi256":
		return termenv.ANSI256, nil
	case "16", "ansi":
		return termenv.ANSI, nil
	case "none", "ascii":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("unknown color profile %q", name)
}
