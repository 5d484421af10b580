package cache

import "time"

// Bounds applied by Clamp.
const (
	MinSize = 10
	MaxSize = 10000
	MinAge  = time.Minute
	MaxAge  = time.Hour

	DefaultGlyphSize = 1000
	DefaultRampSize  = 500
	DefaultAge       = 30 * time.Minute
)

// Options configures one cache.
type Options struct {
	MaxSize         int           `mapstructure:"max_size" yaml:"maxSize" json:"maxSize"`
	MaxAge          time.Duration `mapstructure:"max_age" yaml:"maxAge" json:"maxAge"`
	RefreshOnAccess bool          `mapstructure:"refresh_on_access" yaml:"refreshOnAccess" json:"refreshOnAccess"`
}

// GlyphDefaults are the options for the glyph block cache.
func GlyphDefaults() Options {
	return Options{MaxSize: DefaultGlyphSize, MaxAge: DefaultAge, RefreshOnAccess: true}
}

// RampDefaults are the options for the ramp cache.
func RampDefaults() Options {
	return Options{MaxSize: DefaultRampSize, MaxAge: DefaultAge, RefreshOnAccess: true}
}

// Clamp pulls out-of-range values back into bounds instead of rejecting them.
func (o Options) Clamp() Options {
	o.MaxSize = clampInt(o.MaxSize, MinSize, MaxSize)
	switch {
	case o.MaxAge < MinAge:
		o.MaxAge = MinAge
	case o.MaxAge > MaxAge:
		o.MaxAge = MaxAge
	}
	return o
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
