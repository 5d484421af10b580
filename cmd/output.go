package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

const defaultFilenamePattern = "{{.index}}-{{.slug}}.txt"

// OutputConfig holds configuration for file output
type OutputConfig struct {
	File            string
	Directory       string
	FilenamePattern string
	DryRun          bool
}

// Enabled reports whether banners go to files (or a dry run) instead of
// straight to the terminal.
func (c OutputConfig) Enabled() bool {
	return c.File != "" || c.Directory != "" || c.DryRun
}

// BannerResult holds one rendered banner
type BannerResult struct {
	Index      int
	Text       string
	Content    string
	Filled     bool
	OutputPath string
}

// FileInfo holds information used for filename generation
type FileInfo struct {
	Index int
	Text  string
}

// GenerateFilename creates a filename from pattern and file info
func GenerateFilename(pattern string, info FileInfo) (string, error) {
	if pattern == "" {
		pattern = defaultFilenamePattern
	}
	tmpl, err := template.New("filename").Option("missingkey=error").Parse(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid filename pattern: %w", err)
	}

	data := map[string]string{
		"index": fmt.Sprintf("%02d", info.Index),
		"slug":  slug(info.Text),
		"text":  info.Text,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing filename template: %w", err)
	}

	return buf.String(), nil
}

func slug(text string) string {
	s := lo.KebabCase(text)
	if s == "" {
		return "banner"
	}
	return s
}

// WriteResults writes banners to files based on the output configuration.
// Progress messages go to w.
func WriteResults(w io.Writer, fs afero.Fs, results []BannerResult, config OutputConfig) error {
	if config.DryRun {
		return printDryRun(w, results, config)
	}

	if config.File != "" {
		return writeSingleFile(w, fs, results, config)
	}

	// Ensure output directory exists
	if err := fs.MkdirAll(config.Directory, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return writeSeparateFiles(w, fs, results, config)
}

func combine(results []BannerResult) string {
	var combined strings.Builder
	for i, r := range results {
		if i > 0 {
			combined.WriteString("\n")
		}
		combined.WriteString(r.Content)
		combined.WriteString("\n")
	}
	return combined.String()
}

// writeSingleFile writes all banners into one file separated by blank lines
func writeSingleFile(w io.Writer, fs afero.Fs, results []BannerResult, config OutputConfig) error {
	if dir := filepath.Dir(config.File); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, config.File, []byte(combine(results)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.File, err)
	}

	for i := range results {
		results[i].OutputPath = config.File
	}
	fmt.Fprintf(w, "Saved %d banner(s): %s\n", len(results), config.File)
	return nil
}

// writeSeparateFiles writes each banner to its own file
func writeSeparateFiles(w io.Writer, fs afero.Fs, results []BannerResult, config OutputConfig) error {
	for i, r := range results {
		filename, err := GenerateFilename(config.FilenamePattern, FileInfo{Index: r.Index, Text: r.Text})
		if err != nil {
			return err
		}

		path := filepath.Join(config.Directory, filename)
		if err := afero.WriteFile(fs, path, []byte(r.Content+"\n"), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		// Update the result with the output path
		results[i].OutputPath = path
		fmt.Fprintf(w, "Saved: %s\n", path)
	}
	return nil
}

// printDryRun displays what would be written without actually writing files
func printDryRun(w io.Writer, results []BannerResult, config OutputConfig) error {
	fmt.Fprintln(w, "\n=== DRY RUN - No files written ===")

	switch {
	case config.File != "":
		fmt.Fprintf(w, "Would write %d banner(s) to: %s\n\n", len(results), config.File)
		fmt.Fprintln(w, previewStyle.Render(strings.TrimRight(combine(results), "\n")))
	case config.Directory != "":
		for _, r := range results {
			filename, err := GenerateFilename(config.FilenamePattern, FileInfo{Index: r.Index, Text: r.Text})
			if err != nil {
				filename = fmt.Sprintf("%02d-%s.txt", r.Index, slug(r.Text))
			}
			fmt.Fprintf(w, "Would write: %s\n", filepath.Join(config.Directory, filename))
			fmt.Fprintln(w, previewStyle.Render(r.Content))
			fmt.Fprintln(w)
		}
	default:
		for _, r := range results {
			fmt.Fprintln(w, previewStyle.Render(r.Content))
		}
	}
	return nil
}
