package registry

// PaletteRegistry represents the user palettes file (palettes.yaml)
type PaletteRegistry struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Palettes   []PaletteEntry `yaml:"palettes"`
}

// PaletteEntry represents a single user palette
type PaletteEntry struct {
	Name        string   `yaml:"name" json:"name"`
	Colors      []string `yaml:"colors" json:"colors"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	CreatedAt   string   `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
}
