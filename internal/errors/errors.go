package errors

import (
	"fmt"
)

// Kind classifies a caller-visible failure.
type Kind string

const (
	KindInvalidPalette       Kind = "invalid palette"
	KindFontNotFound         Kind = "font not found"
	KindInvalidInput         Kind = "invalid input"
	KindInvalidConfiguration Kind = "invalid configuration"
)

// Sentinels for errors.Is checks.
var (
	ErrInvalidPalette       = &Error{Kind: KindInvalidPalette}
	ErrFontNotFound         = &Error{Kind: KindFontNotFound}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
	ErrInvalidConfiguration = &Error{Kind: KindInvalidConfiguration}
)

// Error carries the kind of failure plus optional detail and cause.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

// Is reports a match when target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Unwrap exposes the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InvalidPalette reports an unusable color-stop list or palette name.
func InvalidPalette(format string, args ...any) error {
	return &Error{Kind: KindInvalidPalette, Detail: fmt.Sprintf(format, args...)}
}

// PaletteNotFound reports a palette name missing from the palette table.
func PaletteNotFound(name string) error {
	return &Error{Kind: KindInvalidPalette, Detail: fmt.Sprintf("palette %q not found", name)}
}

// FontNotFound wraps a generator rejection of the requested font.
func FontNotFound(font string, err error) error {
	return &Error{Kind: KindFontNotFound, Detail: fmt.Sprintf("font %q", font), Err: err}
}

// InvalidInput reports unusable text input.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Detail: fmt.Sprintf(format, args...)}
}

// InvalidConfiguration reports an option value outside its meaningful range.
func InvalidConfiguration(field string, err error) error {
	return &Error{Kind: KindInvalidConfiguration, Detail: field, Err: err}
}
