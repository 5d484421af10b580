package params

// BannerFile supports both single and multi-banner formats
type BannerFile struct {
	// Single banner format
	Banner `yaml:",inline"`

	// Multi-banner format
	Banners []Banner `yaml:"banners" json:"banners"`
}

// Banner holds the settings for one rendered banner. Empty fields fall
// back to the command line and configuration.
type Banner struct {
	Text          string   `yaml:"text" json:"text"`
	Palette       string   `yaml:"palette" json:"palette"`
	Colors        []string `yaml:"colors" json:"colors"`
	Font          string   `yaml:"font" json:"font"`
	Direction     string   `yaml:"direction" json:"direction"`
	LetterSpacing *int     `yaml:"letterSpacing" json:"letterSpacing"`
	Filled        *bool    `yaml:"filled" json:"filled"`
}

// Normalize converts single-banner format to multi-banner format. In the
// multi-banner format the top-level fields are defaults for every entry.
func (bf *BannerFile) Normalize() {
	defaults := bf.Banner
	bf.Banner = Banner{}

	if len(bf.Banners) == 0 {
		if defaults.Text != "" {
			bf.Banners = []Banner{defaults}
		}
		return
	}
	for i := range bf.Banners {
		bf.Banners[i] = bf.Banners[i].withDefaults(defaults)
	}
}

func (b Banner) withDefaults(d Banner) Banner {
	if b.Palette == "" && b.Colors == nil {
		b.Palette = d.Palette
		b.Colors = d.Colors
	}
	if b.Font == "" {
		b.Font = d.Font
	}
	if b.Direction == "" {
		b.Direction = d.Direction
	}
	if b.LetterSpacing == nil {
		b.LetterSpacing = d.LetterSpacing
	}
	if b.Filled == nil {
		b.Filled = d.Filled
	}
	return b
}
