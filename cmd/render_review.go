package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ReviewAction represents the user's choice in the review step
type ReviewAction string

const (
	ReviewActionContinue ReviewAction = "continue"
	ReviewActionEdit     ReviewAction = "edit"
	ReviewActionCancel   ReviewAction = "cancel"
)

// Styles for review UI
var (
	reviewHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205")).
				MarginTop(1).
				MarginBottom(1)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// ShowPreview prints a rendered banner inside a frame
func ShowPreview(w io.Writer, title, content string) {
	fmt.Fprintln(w, reviewHeaderStyle.Render(fmt.Sprintf("━━━ %s ━━━", title)))
	fmt.Fprintln(w, previewStyle.Render(truncateLines(content, 20)))
}

// ReviewBanner asks whether to keep, edit or drop the previewed banner
func ReviewBanner() (ReviewAction, error) {
	var action string

	actionForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("Keep this banner", string(ReviewActionContinue)),
					huh.NewOption("Change the settings", string(ReviewActionEdit)),
					huh.NewOption("Cancel", string(ReviewActionCancel)),
				).
				Value(&action),
		),
	)

	if err := actionForm.Run(); err != nil {
		return ReviewActionCancel, err
	}
	return ReviewAction(action), nil
}

// truncateLines truncates content to a maximum number of lines
func truncateLines(content string, maxLines int) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) <= maxLines {
		return strings.TrimRight(content, "\n")
	}

	truncated := strings.Join(lines[:maxLines], "\n")
	return truncated + fmt.Sprintf("\n... (%d more lines)", len(lines)-maxLines)
}
