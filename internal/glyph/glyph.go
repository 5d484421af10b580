// Package glyph turns text into blocks of monospace character art.
package glyph

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/stuttgart-things/banner/internal/errors"
)

// FillRune replaces every visible rune on the filled rendering path.
const FillRune = '█'

// Block is one rendered banner, one string per row. Rows may be blank.
type Block []string

// Key fingerprints the inputs that determine a generated Block.
type Key struct {
	Text          string
	Font          string
	LetterSpacing int
}

// Layout carries generation options that change the produced art.
type Layout struct {
	LetterSpacing int
}

// Validate rejects option values that have no meaning.
func (l Layout) Validate() error {
	if l.LetterSpacing < 0 {
		return apperrors.InvalidConfiguration("letter spacing",
			fmt.Errorf("must be >= 0, got %d", l.LetterSpacing))
	}
	return nil
}

// Generator produces character art for text in a named font.
type Generator interface {
	Generate(text, font string, layout Layout) (Block, error)
	Fonts() []string
}

// Split breaks multi-line art into rows. A single trailing newline is dropped.
func Split(s string) Block {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Join is the inverse of Split.
func Join(b Block) string {
	return strings.Join(b, "\n")
}

// IsBlank reports whether a row is empty or whitespace only.
func IsBlank(row string) bool {
	return strings.TrimSpace(row) == ""
}

// Width returns the widest row in runes.
func (b Block) Width() int {
	width := 0
	for _, row := range b {
		if n := utf8.RuneCountInString(row); n > width {
			width = n
		}
	}
	return width
}

// Fill replaces every non-whitespace rune with FillRune.
func Fill(b Block) Block {
	if b == nil {
		return nil
	}
	out := make(Block, len(b))
	for i, row := range b {
		out[i] = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return r
			}
			return FillRune
		}, row)
	}
	return out
}

// padRight widens every row to width runes.
func padRight(b Block, width int) Block {
	out := make(Block, len(b))
	for i, row := range b {
		if n := utf8.RuneCountInString(row); n < width {
			row += strings.Repeat(" ", width-n)
		}
		out[i] = row
	}
	return out
}

// joinHorizontal places blocks side by side with gap blank columns between them.
func joinHorizontal(blocks []Block, gap int) Block {
	height := 0
	for _, b := range blocks {
		if len(b) > height {
			height = len(b)
		}
	}

	rows := make([]strings.Builder, height)
	for n, b := range blocks {
		padded := padRight(b, b.Width())
		width := padded.Width()
		for i := 0; i < height; i++ {
			if n > 0 {
				rows[i].WriteString(strings.Repeat(" ", gap))
			}
			if i < len(padded) {
				rows[i].WriteString(padded[i])
			} else {
				rows[i].WriteString(strings.Repeat(" ", width))
			}
		}
	}

	out := make(Block, height)
	for i := range rows {
		out[i] = strings.TrimRight(rows[i].String(), " ")
	}
	return out
}

// compose renders text line by line through render, honouring letter spacing.
func compose(text string, layout Layout, render func(string) (Block, error)) (Block, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	var out Block
	for _, line := range strings.Split(text, "\n") {
		if layout.LetterSpacing == 0 {
			b, err := render(line)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
			continue
		}

		var parts []Block
		for _, r := range line {
			b, err := render(string(r))
			if err != nil {
				return nil, err
			}
			parts = append(parts, b)
		}
		out = append(out, joinHorizontal(parts, layout.LetterSpacing)...)
	}
	return out, nil
}
