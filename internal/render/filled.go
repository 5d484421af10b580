package render

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stuttgart-things/banner/internal/glyph"
)

type settledMsg struct{}

// settleModel shows a finished banner and quits once the terminal has had
// time to flush it.
type settleModel struct {
	view  string
	delay time.Duration
}

func (m settleModel) Init() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return settledMsg{} })
}

func (m settleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case settledMsg, tea.KeyMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m settleModel) View() string {
	return m.view + "\n"
}

// Filled returns req as colored solid block glyphs. Empty text renders
// to "".
func (r *Renderer) Filled(req Request) (string, error) {
	stops, dir, err := r.resolve(req)
	if err != nil {
		return "", err
	}
	if req.Text == "" {
		return "", nil
	}

	block, err := r.glyphs(req)
	if err != nil {
		return "", err
	}
	return r.engine.Colorize(glyph.Fill(block), stops, dir)
}

// RenderFilled writes req as solid block glyphs to w and returns after the
// settle delay. Empty text writes nothing.
func (r *Renderer) RenderFilled(ctx context.Context, w io.Writer, req Request) error {
	colored, err := r.Filled(req)
	if err != nil || colored == "" {
		return err
	}

	p := tea.NewProgram(settleModel{view: colored, delay: r.settle},
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(w),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("showing filled banner: %w", err)
	}
	r.log.Debug("filled banner settled", "delay", r.settle.String())
	return nil
}
