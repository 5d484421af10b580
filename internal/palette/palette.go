package palette

import (
	"sort"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"

	apperrors "github.com/stuttgart-things/banner/internal/errors"
)

// DefaultName is used when the caller names no palette at all.
const DefaultName = "neon"

// Stops is an ordered list of gradient color stops, first to last.
type Stops []colorful.Color

// Clone returns an independent copy.
func (s Stops) Clone() Stops {
	if s == nil {
		return nil
	}
	out := make(Stops, len(s))
	copy(out, s)
	return out
}

// Hex returns the stops as #rrggbb strings.
func (s Stops) Hex() []string {
	return lo.Map(s, func(c colorful.Color, _ int) string { return c.Hex() })
}

var builtins = map[string][]string{
	"neon":      {"#ff00ff", "#00ffff"},
	"atlas":     {"#feac5e", "#c779d0", "#4bc0c8"},
	"cristal":   {"#bdfff3", "#4ac29a"},
	"teen":      {"#77a1d3", "#79cbca", "#e684ae"},
	"mind":      {"#473b7b", "#3584a7", "#30d2be"},
	"morning":   {"#ff5f6d", "#ffc371"},
	"vice":      {"#5ee7df", "#b490ca"},
	"passion":   {"#f43b47", "#453a94"},
	"fruit":     {"#ff4e50", "#f9d423"},
	"instagram": {"#833ab4", "#fd1d1d", "#fcb045"},
	"retro":     {"#3f51b1", "#5a55ae", "#7b5fac", "#8f6aae", "#a86aa4", "#cc6b8e", "#f18271", "#f3a469", "#f7c978"},
	"summer":    {"#fdbb2d", "#22c1c3"},
	"rainbow":   {"#ff0000", "#ffff00", "#00ff00", "#00ffff", "#0000ff", "#ff00ff"},
	"pastel":    {"#74ebd5", "#acb6e5"},
}

var named = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
}

// ParseColor accepts #rrggbb, #rgb, the same without '#', or a basic color name.
func ParseColor(value string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := named[v]; ok {
		v = hex
	}
	if v != "" && !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, apperrors.InvalidPalette("malformed color %q", value)
	}
	return c, nil
}

// ParseColors turns explicit color values into Stops. An empty list is invalid.
func ParseColors(values []string) (Stops, error) {
	if len(values) == 0 {
		return nil, apperrors.InvalidPalette("color list is empty")
	}
	stops := make(Stops, 0, len(values))
	for _, v := range values {
		c, err := ParseColor(v)
		if err != nil {
			return nil, err
		}
		stops = append(stops, c)
	}
	return stops, nil
}

// Table maps palette names to color stops. Lookups always return fresh
// copies, so callers never share backing arrays.
type Table struct {
	mu       sync.RWMutex
	palettes map[string][]string
}

// NewTable returns a table seeded with the builtin palettes.
func NewTable() *Table {
	t := &Table{palettes: make(map[string][]string, len(builtins))}
	for name, colors := range builtins {
		t.palettes[name] = colors
	}
	return t
}

// Add registers or replaces a palette after validating its colors.
func (t *Table) Add(name string, colors []string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return apperrors.InvalidPalette("palette name is empty")
	}
	if _, err := ParseColors(colors); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.palettes[name] = append([]string(nil), colors...)
	return nil
}

// Has reports whether name is known.
func (t *Table) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.palettes[strings.ToLower(name)]
	return ok
}

// Lookup resolves a palette name. Unknown names are PaletteNotFound.
func (t *Table) Lookup(name string) (Stops, error) {
	t.mu.RLock()
	colors, ok := t.palettes[strings.ToLower(strings.TrimSpace(name))]
	t.mu.RUnlock()
	if !ok {
		return nil, apperrors.PaletteNotFound(name)
	}
	return ParseColors(colors)
}

// Colors returns the raw color values of a palette.
func (t *Table) Colors(name string) ([]string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	colors, ok := t.palettes[strings.ToLower(name)]
	return append([]string(nil), colors...), ok
}

// Names returns all palette names sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	names := lo.Keys(t.palettes)
	t.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Resolve prefers explicit colors over a palette name. An empty name with no
// colors resolves to DefaultName.
func (t *Table) Resolve(name string, colors []string) (Stops, error) {
	if colors != nil {
		return ParseColors(colors)
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	return t.Lookup(name)
}
