package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/stuttgart-things/banner/internal/palette"
)

const (
	DefaultAPIVersion = "banner.stuttgart-things.com/v1alpha1"
	DefaultKind       = "PaletteRegistry"
)

// Load reads and parses a palettes.yaml file
func Load(fs afero.Fs, path string) (*PaletteRegistry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}

	var reg PaletteRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing palette file: %w", err)
	}

	return &reg, nil
}

// LoadOrNew behaves like Load but returns an empty registry when the file
// does not exist yet.
func LoadOrNew(fs afero.Fs, path string) (*PaletteRegistry, error) {
	reg, err := Load(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return NewRegistry(), nil
	}
	return reg, err
}

// Save writes a PaletteRegistry to a YAML file, creating its directory
func Save(fs afero.Fs, path string, reg *PaletteRegistry) error {
	if reg.APIVersion == "" {
		reg.APIVersion = DefaultAPIVersion
	}
	if reg.Kind == "" {
		reg.Kind = DefaultKind
	}

	data, err := yaml.Marshal(reg)
	if err != nil {
		return fmt.Errorf("marshalling palette file: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating palette directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing palette file: %w", err)
	}

	return nil
}

// AddEntry adds a palette entry to the registry.
// If an entry with the same name already exists, it is replaced.
// The colors are validated before anything changes.
func AddEntry(reg *PaletteRegistry, entry PaletteEntry) error {
	entry.Name = strings.ToLower(strings.TrimSpace(entry.Name))
	if entry.Name == "" {
		return fmt.Errorf("palette name is empty")
	}
	if _, err := palette.ParseColors(entry.Colors); err != nil {
		return err
	}

	for i, e := range reg.Palettes {
		if e.Name == entry.Name {
			reg.Palettes[i] = entry
			return nil
		}
	}
	reg.Palettes = append(reg.Palettes, entry)
	return nil
}

// RemoveEntry removes a palette entry by name.
// Returns an error if the entry is not found.
func RemoveEntry(reg *PaletteRegistry, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, e := range reg.Palettes {
		if e.Name == name {
			reg.Palettes = append(reg.Palettes[:i], reg.Palettes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("palette %q not found in %s", name, DefaultKind)
}

// FindEntry returns a pointer to the palette entry with the given name, or nil.
func FindEntry(reg *PaletteRegistry, name string) *PaletteEntry {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, e := range reg.Palettes {
		if e.Name == name {
			return &reg.Palettes[i]
		}
	}
	return nil
}

// Apply registers every entry in table. User palettes may shadow builtins.
func Apply(reg *PaletteRegistry, table *palette.Table) error {
	for _, e := range reg.Palettes {
		if err := table.Add(e.Name, e.Colors); err != nil {
			return fmt.Errorf("palette %q: %w", e.Name, err)
		}
	}
	return nil
}

// NewRegistry creates an empty PaletteRegistry with default fields.
func NewRegistry() *PaletteRegistry {
	return &PaletteRegistry{
		APIVersion: DefaultAPIVersion,
		Kind:       DefaultKind,
		Palettes:   []PaletteEntry{},
	}
}
