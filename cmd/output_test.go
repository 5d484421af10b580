package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		info     FileInfo
		expected string
		wantErr  bool
	}{
		{
			name:     "default pattern",
			pattern:  "",
			info:     FileInfo{Index: 3, Text: "Hello World"},
			expected: "03-hello-world.txt",
		},
		{
			name:     "slug only pattern",
			pattern:  "{{.slug}}.ans",
			info:     FileInfo{Index: 1, Text: "Release Notes"},
			expected: "release-notes.ans",
		},
		{
			name:     "custom pattern with prefix",
			pattern:  "banner-{{.index}}.txt",
			info:     FileInfo{Index: 12, Text: "x"},
			expected: "banner-12.txt",
		},
		{
			name:     "text without letters falls back",
			pattern:  "{{.slug}}.txt",
			info:     FileInfo{Index: 1, Text: "!!!"},
			expected: "banner.txt",
		},
		{
			name:    "unknown key",
			pattern: "{{.template}}.txt",
			info:    FileInfo{Index: 1, Text: "x"},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			pattern: "{{.invalid",
			info:    FileInfo{Index: 1, Text: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GenerateFilename(tt.pattern, tt.info)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestOutputConfigEnabled(t *testing.T) {
	if (OutputConfig{}).Enabled() {
		t.Errorf("empty config should print to the terminal")
	}
	for _, c := range []OutputConfig{{File: "a.txt"}, {Directory: "out"}, {DryRun: true}} {
		if !c.Enabled() {
			t.Errorf("%+v should be enabled", c)
		}
	}
}

func TestWriteResults_SeparateFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	results := []BannerResult{
		{Index: 1, Text: "one", Content: "ONE"},
		{Index: 2, Text: "two", Content: "TWO"},
	}

	var out bytes.Buffer
	err := WriteResults(&out, fs, results, OutputConfig{Directory: "/nested/out", FilenamePattern: "{{.slug}}.txt"})
	if err != nil {
		t.Fatalf("WriteResults failed: %v", err)
	}

	for path, want := range map[string]string{"/nested/out/one.txt": "ONE\n", "/nested/out/two.txt": "TWO\n"} {
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		if string(content) != want {
			t.Errorf("%s: expected %q, got %q", path, want, content)
		}
	}

	if results[1].OutputPath != "/nested/out/two.txt" {
		t.Errorf("output path not recorded: %q", results[1].OutputPath)
	}
	if !strings.Contains(out.String(), "Saved: /nested/out/one.txt") {
		t.Errorf("missing progress line: %s", out.String())
	}
}

func TestWriteResults_SingleFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	results := []BannerResult{
		{Index: 1, Text: "one", Content: "ONE"},
		{Index: 2, Text: "two", Content: "TWO"},
	}

	var out bytes.Buffer
	if err := WriteResults(&out, fs, results, OutputConfig{File: "/art/all.txt"}); err != nil {
		t.Fatalf("WriteResults failed: %v", err)
	}

	content, err := afero.ReadFile(fs, "/art/all.txt")
	if err != nil {
		t.Fatalf("failed to read combined file: %v", err)
	}
	if string(content) != "ONE\n\nTWO\n" {
		t.Errorf("banners should be separated by a blank line, got %q", content)
	}
	if !strings.Contains(out.String(), "Saved 2 banner(s): /art/all.txt") {
		t.Errorf("missing progress line: %s", out.String())
	}
}

func TestWriteResults_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	results := []BannerResult{{Index: 1, Text: "test", Content: "test content"}}

	var out bytes.Buffer
	err := WriteResults(&out, fs, results, OutputConfig{Directory: "/out", DryRun: true})
	if err != nil {
		t.Fatalf("WriteResults failed: %v", err)
	}

	if exists, _ := afero.DirExists(fs, "/out"); exists {
		t.Errorf("dry run should not create the output directory")
	}
	if !strings.Contains(out.String(), "Would write: /out/01-test.txt") {
		t.Errorf("dry run should name the target file, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "test content") {
		t.Errorf("dry run should preview the content")
	}
}

func TestWriteResults_BadPatternWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	results := []BannerResult{{Index: 1, Text: "x", Content: "X"}}

	err := WriteResults(&bytes.Buffer{}, fs, results, OutputConfig{Directory: "/out", FilenamePattern: "{{.nope}}"})
	if err == nil {
		t.Fatalf("expected an error for an unknown pattern key")
	}
	files, _ := afero.ReadDir(fs, "/out")
	if len(files) != 0 {
		t.Errorf("expected no files, found %d", len(files))
	}
}
