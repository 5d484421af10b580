// Package config loads banner settings from defaults, an optional
// banner.yaml, BANNER_* environment variables and bound command flags.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stuttgart-things/banner/internal/cache"
	apperrors "github.com/stuttgart-things/banner/internal/errors"
	"github.com/stuttgart-things/banner/internal/palette"
)

const (
	// Name is the config file base name and the environment prefix.
	Name = "banner"

	DefaultDirection   = "vertical"
	DefaultBlend       = "luv"
	DefaultColor       = "auto"
	DefaultGenerator   = "figure"
	DefaultLogLevel    = "warn"
	DefaultSettleDelay = 50 * time.Millisecond
	DefaultTimeout     = 10 * time.Second
)

// EnvKeyReplacer maps nested keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Config is the resolved configuration.
type Config struct {
	Palette       string        `mapstructure:"palette"`
	Font          string        `mapstructure:"font"`
	FontDir       string        `mapstructure:"font_dir"`
	Generator     string        `mapstructure:"generator" validate:"oneof=figure figlet"`
	Direction     string        `mapstructure:"direction" validate:"oneof=vertical horizontal diagonal"`
	Blend         string        `mapstructure:"blend" validate:"oneof=luv rgb oklab"`
	Color         string        `mapstructure:"color" validate:"oneof=auto always never"`
	LetterSpacing int           `mapstructure:"letter_spacing" validate:"gte=0"`
	SettleDelay   time.Duration `mapstructure:"settle_delay" validate:"gte=0"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	PalettesFile  string        `mapstructure:"palettes_file"`

	Log   LogConfig   `mapstructure:"log"`
	Cache CacheConfig `mapstructure:"cache"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Pretty bool   `mapstructure:"pretty"`
}

// CacheConfig holds both cache option sets. Values are clamped, never rejected.
type CacheConfig struct {
	Glyph cache.Options `mapstructure:"glyph"`
	Ramp  cache.Options `mapstructure:"ramp"`
}

// Loader owns a viper instance so tests and the CLI never share state.
type Loader struct {
	v *viper.Viper
}

// NewLoader sets defaults, env bindings and the config search path.
// An explicit file overrides the search path.
func NewLoader(fs afero.Fs, file string) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, Name))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(Name)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
	return &Loader{v: v}
}

// Defaults lists every key with its default value.
func Defaults() map[string]any {
	glyph, ramp := cache.GlyphDefaults(), cache.RampDefaults()
	return map[string]any{
		"palette":                       palette.DefaultName,
		"font":                          "",
		"font_dir":                      "",
		"generator":                     DefaultGenerator,
		"direction":                     DefaultDirection,
		"blend":                         DefaultBlend,
		"color":                         DefaultColor,
		"letter_spacing":                0,
		"settle_delay":                  DefaultSettleDelay,
		"timeout":                       DefaultTimeout,
		"palettes_file":                 DefaultPalettesFile(),
		"log.level":                     DefaultLogLevel,
		"log.pretty":                    true,
		"cache.glyph.max_size":          glyph.MaxSize,
		"cache.glyph.max_age":           glyph.MaxAge,
		"cache.glyph.refresh_on_access": glyph.RefreshOnAccess,
		"cache.ramp.max_size":           ramp.MaxSize,
		"cache.ramp.max_age":            ramp.MaxAge,
		"cache.ramp.refresh_on_access":  ramp.RefreshOnAccess,
	}
}

// DefaultPalettesFile is where user palettes live unless configured otherwise.
func DefaultPalettesFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", Name, "palettes.yaml")
	}
	return filepath.Join(dir, Name, "palettes.yaml")
}

// BindFlags binds command flags to config keys. Flag names use dashes,
// keys use underscores.
func (l *Loader) BindFlags(flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Set overrides one key, above every other source.
func (l *Loader) Set(key string, value any) {
	l.v.Set(key, value)
}

// ConfigFileUsed returns the file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Load reads the config file, decodes and validates. A file missing from
// the search path is fine; a missing explicit file is not.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, apperrors.InvalidConfiguration("config file", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, apperrors.InvalidConfiguration("config", err)
	}
	cfg.normalize()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Palette = strings.ToLower(strings.TrimSpace(c.Palette))
	c.Direction = strings.ToLower(strings.TrimSpace(c.Direction))
	c.Blend = strings.ToLower(strings.TrimSpace(c.Blend))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	c.Generator = strings.ToLower(strings.TrimSpace(c.Generator))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Cache.Glyph = c.Cache.Glyph.Clamp()
	c.Cache.Ramp = c.Cache.Ramp.Clamp()
}
