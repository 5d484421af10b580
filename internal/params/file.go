package params

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ParseFile reads and parses a banner file (YAML or JSON)
func ParseFile(fs afero.Fs, path string) (*BannerFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading banner file: %w", err)
	}

	var bf BannerFile

	// Detect format by extension or try both
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &bf); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &bf); err != nil {
			if jsonErr := json.Unmarshal(data, &bf); jsonErr != nil {
				return nil, fmt.Errorf("parsing banner file (tried YAML and JSON): %w", err)
			}
		}
	}

	bf.Normalize()
	if len(bf.Banners) == 0 {
		return nil, fmt.Errorf("banner file %s defines no banners", path)
	}
	return &bf, nil
}

// ParseInlineParams parses key=value strings into a map
func ParseInlineParams(params []string) (map[string]string, error) {
	result := make(map[string]string)

	for _, p := range params {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid param format: %s (expected key=value)", p)
		}
		result[normalizeKey(parts[0])] = parts[1]
	}

	return result, nil
}

// Keys accepted by Apply.
var Keys = []string{"text", "palette", "colors", "font", "direction", "letter_spacing", "filled"}

// Apply sets banner fields from key=value overrides. Colors are comma
// separated.
func Apply(b Banner, overrides map[string]string) (Banner, error) {
	for key, value := range overrides {
		switch normalizeKey(key) {
		case "text":
			b.Text = value
		case "palette":
			b.Palette = value
		case "colors":
			b.Colors = SplitColors(value)
		case "font":
			b.Font = value
		case "direction":
			b.Direction = value
		case "letter_spacing":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return b, fmt.Errorf("letter_spacing: %w", err)
			}
			b.LetterSpacing = &n
		case "filled":
			f, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return b, fmt.Errorf("filled: %w", err)
			}
			b.Filled = &f
		default:
			return b, fmt.Errorf("unknown key %q (want one of %s)", key, strings.Join(Keys, ", "))
		}
	}
	return b, nil
}

// SplitColors splits a comma separated color list, dropping empty items.
func SplitColors(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(c string, _ int) (string, bool) {
		c = strings.TrimSpace(c)
		return c, c != ""
	})
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, "-", "_")
	if k == "letterspacing" {
		return "letter_spacing"
	}
	return k
}
