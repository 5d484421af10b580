package params

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestParseFile_SingleBannerYAML(t *testing.T) {
	content := `text: HELLO
palette: vice
direction: diagonal
letterSpacing: 1
`
	fs, path := createFile(t, "banner.yaml", content)

	bf, err := ParseFile(fs, path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if len(bf.Banners) != 1 {
		t.Fatalf("expected 1 banner, got %d", len(bf.Banners))
	}

	b := bf.Banners[0]
	if b.Text != "HELLO" {
		t.Errorf("expected text 'HELLO', got '%s'", b.Text)
	}
	if b.Direction != "diagonal" {
		t.Errorf("expected direction 'diagonal', got '%s'", b.Direction)
	}
	if b.LetterSpacing == nil || *b.LetterSpacing != 1 {
		t.Errorf("expected letterSpacing 1, got %v", b.LetterSpacing)
	}
	if b.Filled != nil {
		t.Errorf("expected filled unset, got %v", *b.Filled)
	}
}

func TestParseFile_MultiBannerYAML(t *testing.T) {
	content := `palette: retro
font: slant
banners:
  - text: first

  - text: second
    colors: ["#ff0000", "#0000ff"]
    filled: true
`
	fs, path := createFile(t, "banners.yml", content)

	bf, err := ParseFile(fs, path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if len(bf.Banners) != 2 {
		t.Fatalf("expected 2 banners, got %d", len(bf.Banners))
	}

	first, second := bf.Banners[0], bf.Banners[1]
	if first.Palette != "retro" || first.Font != "slant" {
		t.Errorf("expected top-level defaults on first banner, got %+v", first)
	}
	if second.Palette != "" || len(second.Colors) != 2 {
		t.Errorf("explicit colors must not be combined with default palette, got %+v", second)
	}
	if second.Font != "slant" {
		t.Errorf("expected font default on second banner, got '%s'", second.Font)
	}
	if second.Filled == nil || !*second.Filled {
		t.Errorf("expected filled true on second banner")
	}
}

func TestParseFile_JSON(t *testing.T) {
	content := `{
  "text": "json",
  "colors": ["red", "blue"]
}`
	fs, path := createFile(t, "banner.json", content)

	bf, err := ParseFile(fs, path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if len(bf.Banners) != 1 {
		t.Fatalf("expected 1 banner, got %d", len(bf.Banners))
	}
	if bf.Banners[0].Text != "json" {
		t.Errorf("expected text 'json', got '%s'", bf.Banners[0].Text)
	}
}

func TestParseFile_UnknownExtension(t *testing.T) {
	// YAML content with unknown extension - should try both parsers
	content := `text: plain
`
	fs, path := createFile(t, "banner.txt", content)

	bf, err := ParseFile(fs, path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if len(bf.Banners) != 1 {
		t.Errorf("expected 1 banner, got %d", len(bf.Banners))
	}
}

func TestParseFile_Empty(t *testing.T) {
	fs, path := createFile(t, "empty.yaml", "palette: vice\n")

	if _, err := ParseFile(fs, path); err == nil {
		t.Error("expected error for file without banners")
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(afero.NewMemMapFs(), "/nonexistent/path/banner.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestParseInlineParams(t *testing.T) {
	tests := []struct {
		name    string
		params  []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:   "single param",
			params: []string{"palette=vice"},
			want:   map[string]string{"palette": "vice"},
		},
		{
			name:   "dashed key",
			params: []string{"letter-spacing=2"},
			want:   map[string]string{"letter_spacing": "2"},
		},
		{
			name:   "value with equals sign",
			params: []string{"text=a=b"},
			want:   map[string]string{"text": "a=b"},
		},
		{
			name:   "empty value",
			params: []string{"font="},
			want:   map[string]string{"font": ""},
		},
		{
			name:    "invalid format",
			params:  []string{"palette"},
			wantErr: true,
		},
		{
			name:    "empty key",
			params:  []string{"=x"},
			wantErr: true,
		},
		{
			name:   "empty slice",
			params: []string{},
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInlineParams(tt.params)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseInlineParams() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				for k, v := range tt.want {
					if got[k] != v {
						t.Errorf("ParseInlineParams()[%s] = %v, want %v", k, got[k], v)
					}
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	b, err := Apply(Banner{Text: "x", Palette: "vice"}, map[string]string{
		"colors":         "red, ,#00ff00,",
		"letter_spacing": "3",
		"filled":         "true",
		"direction":      "horizontal",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(b.Colors) != 2 || b.Colors[1] != "#00ff00" {
		t.Errorf("unexpected colors %v", b.Colors)
	}
	if b.LetterSpacing == nil || *b.LetterSpacing != 3 {
		t.Errorf("expected letter spacing 3")
	}
	if b.Filled == nil || !*b.Filled {
		t.Errorf("expected filled")
	}
	if b.Direction != "horizontal" {
		t.Errorf("expected horizontal, got %s", b.Direction)
	}
}

func TestApply_Errors(t *testing.T) {
	for _, overrides := range []map[string]string{
		{"letter_spacing": "wide"},
		{"filled": "maybe"},
		{"size": "10"},
	} {
		if _, err := Apply(Banner{}, overrides); err == nil {
			t.Errorf("expected error for %v", overrides)
		}
	}
}

func TestBannerFile_Normalize_NoOp(t *testing.T) {
	bf := &BannerFile{
		Banners: []Banner{{Text: "a", Palette: "mind"}},
	}

	bf.Normalize()

	if len(bf.Banners) != 1 {
		t.Errorf("expected 1 banner after normalize, got %d", len(bf.Banners))
	}
	if bf.Banners[0].Palette != "mind" {
		t.Errorf("expected palette to stay 'mind', got '%s'", bf.Banners[0].Palette)
	}
}

func createFile(t *testing.T, name, content string) (afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := filepath.Join("/work", name)
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	return fs, path
}
