package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuttgart-things/banner/internal/glyph"
	"github.com/stuttgart-things/banner/internal/palette"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"too small", Options{MaxSize: 1, MaxAge: time.Second}, Options{MaxSize: MinSize, MaxAge: MinAge}},
		{"too large", Options{MaxSize: 1 << 20, MaxAge: 24 * time.Hour}, Options{MaxSize: MaxSize, MaxAge: MaxAge}},
		{"in range", Options{MaxSize: 500, MaxAge: 30 * time.Minute, RefreshOnAccess: true}, Options{MaxSize: 500, MaxAge: 30 * time.Minute, RefreshOnAccess: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, DefaultGlyphSize, GlyphDefaults().MaxSize)
	assert.Equal(t, DefaultRampSize, RampDefaults().MaxSize)
	assert.True(t, GlyphDefaults().RefreshOnAccess)
	assert.Equal(t, DefaultAge, RampDefaults().MaxAge)
}

func TestManagerClampsAndSeparatesKinds(t *testing.T) {
	m := NewManager(Options{MaxSize: 1}, Options{MaxSize: 99999}, nil)

	stats := m.Stats()
	assert.Equal(t, MinSize, stats[GlyphCacheName].MaxSize)
	assert.Equal(t, MaxSize, stats[RampCacheName].MaxSize)

	m.Glyphs.Set(glyph.Key{Text: "a", Font: "standard"}, glyph.Block{"x"})
	_, ok := m.Ramps.Get("a")
	assert.False(t, ok)

	b, ok := m.Glyphs.Get(glyph.Key{Text: "a", Font: "standard"})
	require.True(t, ok)
	assert.Equal(t, glyph.Block{"x"}, b)

	m.Clear()
	assert.Zero(t, m.Glyphs.Len())
	assert.Zero(t, m.Stats()[RampCacheName].Misses)
}

func TestNilManagerIsSafe(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.Clear()
		assert.Zero(t, m.Prune())
		assert.Empty(t, m.Stats())
	})
}

func TestGlyphKeysDistinguishInputs(t *testing.T) {
	a := glyph.Key{Text: "ab", Font: "standard"}
	b := glyph.Key{Text: "ab", Font: "slant"}
	c := glyph.Key{Text: "ab", Font: "standard", LetterSpacing: 1}

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, glyph.Key{Text: "ab", Font: "standard"})
}

func TestRampKeys(t *testing.T) {
	stops, err := palette.ParseColors([]string{"#FF0000", "#00f"})
	require.NoError(t, err)
	same, err := palette.ParseColors([]string{"red", "blue"})
	require.NoError(t, err)
	reversed, err := palette.ParseColors([]string{"blue", "red"})
	require.NoError(t, err)

	const luv = "luv/truecolor"
	assert.Equal(t, "luv/truecolor|#ff0000,#0000ff", RampKey(luv, stops))
	assert.Equal(t, RampKey(luv, stops), RampKey(luv, same))
	assert.NotEqual(t, RampKey(luv, stops), RampKey(luv, reversed))
	assert.NotEqual(t, RampKey(luv, stops), RampKey("luv/ascii", stops))
	assert.NotEqual(t, RampKey(luv, stops), RampKey("oklab/truecolor", stops))

	assert.Equal(t, "luv/truecolor|#ff0000,#0000ff@1.00", ShiftedRampKey(luv, stops, 1.5))
	assert.Equal(t, ShiftedRampKey(luv, stops, 1.0), ShiftedRampKey(luv, stops, 1.99))
	assert.NotEqual(t, ShiftedRampKey(luv, stops, 1.99), ShiftedRampKey(luv, stops, 2.0))
	assert.True(t, strings.HasPrefix(ShiftedRampKey(luv, stops, 0), RampKey(luv, stops)))
}

func TestRampKeyKeepsNonHexColorsApart(t *testing.T) {
	red := palette.Stops{{R: 1}}
	nearRed := palette.Stops{{R: 0.999}}
	overRed := palette.Stops{{R: 1.5}}

	assert.Equal(t, "x|#ff0000", RampKey("x", red))
	assert.NotEqual(t, RampKey("x", red), RampKey("x", nearRed))
	assert.NotEqual(t, RampKey("x", red), RampKey("x", overRed))
	assert.Equal(t, "x|rgb(0.999:0:0)", RampKey("x", nearRed))
}

func TestCollector(t *testing.T) {
	m := NewDefaultManager(nil)
	m.Glyphs.Set(glyph.Key{Text: "a"}, glyph.Block{"x"})
	m.Glyphs.Get(glyph.Key{Text: "a"})
	m.Glyphs.Get(glyph.Key{Text: "b"})

	c := NewCollector(m)
	assert.Equal(t, 10, testutil.CollectAndCount(c))
	assert.Equal(t, 2, testutil.CollectAndCount(c, "banner_cache_hits_total"))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != "banner_cache_hits_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			if metric.GetLabel()[0].GetValue() == GlyphCacheName {
				assert.Equal(t, 1.0, metric.GetCounter().GetValue())
			}
		}
	}
}
