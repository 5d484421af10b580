package cache

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/stuttgart-things/banner/internal/glyph"
	"github.com/stuttgart-things/banner/internal/gradient"
	"github.com/stuttgart-things/banner/internal/logger"
	"github.com/stuttgart-things/banner/internal/palette"
)

// Cache names used in stats and metrics.
const (
	GlyphCacheName = "glyph"
	RampCacheName  = "ramp"
)

// Manager holds the two caches the renderer uses. Each kind of value has
// its own key space and value type, so a read never needs a type check.
type Manager struct {
	Glyphs *Cache[glyph.Key, glyph.Block]
	Ramps  *Cache[string, gradient.Ramp]
}

// NewManager builds both caches with clamped options.
func NewManager(glyphOpts, rampOpts Options, log *logger.Logger) *Manager {
	glyphLog := log.WithFields(map[string]any{"cache": GlyphCacheName})
	rampLog := log.WithFields(map[string]any{"cache": RampCacheName})

	return &Manager{
		Glyphs: New(glyphOpts.Clamp(), WithEvictHook[glyph.Key, glyph.Block](func(k glyph.Key) {
			glyphLog.Debug("evicted", "text", k.Text, "font", k.Font)
		})),
		Ramps: New(rampOpts.Clamp(), WithEvictHook[string, gradient.Ramp](func(k string) {
			rampLog.Debug("evicted", "key", k)
		})),
	}
}

// NewDefaultManager uses GlyphDefaults and RampDefaults.
func NewDefaultManager(log *logger.Logger) *Manager {
	return NewManager(GlyphDefaults(), RampDefaults(), log)
}

// Clear empties both caches and resets their counters.
func (m *Manager) Clear() {
	if m == nil {
		return
	}
	m.Glyphs.Clear()
	m.Ramps.Clear()
}

// Prune drops expired entries from both caches.
func (m *Manager) Prune() int {
	if m == nil {
		return 0
	}
	return m.Glyphs.Prune() + m.Ramps.Prune()
}

// Stats reports both caches by name.
func (m *Manager) Stats() map[string]Stats {
	if m == nil {
		return map[string]Stats{}
	}
	return map[string]Stats{
		GlyphCacheName: m.Glyphs.Stats(),
		RampCacheName:  m.Ramps.Stats(),
	}
}

// RampKey fingerprints the ramp an interpolator identified by interp builds
// for stops, e.g. "luv/truecolor|#ff0000,#0000ff".
func RampKey(interp string, stops palette.Stops) string {
	parts := make([]string, len(stops))
	for i, c := range stops {
		parts[i] = colorKey(c)
	}
	return interp + "|" + strings.Join(parts, ",")
}

// ShiftedRampKey fingerprints a stop list rotated by shift positions. Only
// the whole part of shift changes the rotated list, so the key records
// floor(shift) with two decimals.
func ShiftedRampKey(interp string, stops palette.Stops, shift float64) string {
	return RampKey(interp, stops) + "@" + strconv.FormatFloat(math.Floor(shift), 'f', 2, 64)
}

// colorKey is the hex form when it round-trips exactly, otherwise the raw
// channels.
func colorKey(c colorful.Color) string {
	hex := c.Hex()
	if back, err := colorful.Hex(hex); err == nil && back == c {
		return hex
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return "rgb(" + f(c.R) + ":" + f(c.G) + ":" + f(c.B) + ")"
}
