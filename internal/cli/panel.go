package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/scrambler/pkg/frame"
	"github.com/matzehuels/scrambler/pkg/pipeline"
	"github.com/matzehuels/scrambler/pkg/scramble"
)

// Panel styles
var (
	panelSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	panelNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	panelDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelBarStyle      = lipgloss.NewStyle().Foreground(colorGreen)
)

const sliderWidth = 20

// =============================================================================
// Controls
// =============================================================================

// control is one adjustable slider in the panel, backed by the grid config.
type control struct {
	label    string
	min, max int
	get      func(*scramble.GridConfig) int
	set      func(*scramble.GridConfig, int)
	format   func(int) string
}

func gridControls() []control {
	return []control{
		{
			label: "Rows", min: scramble.MinBlocks, max: scramble.MaxBlocks,
			get:    func(g *scramble.GridConfig) int { return g.Rows() },
			set:    func(g *scramble.GridConfig, v int) { g.SetRows(v) },
			format: func(v int) string { return fmt.Sprint(v) },
		},
		{
			label: "Columns", min: scramble.MinBlocks, max: scramble.MaxBlocks,
			get:    func(g *scramble.GridConfig) int { return g.Columns() },
			set:    func(g *scramble.GridConfig, v int) { g.SetColumns(v) },
			format: func(v int) string { return fmt.Sprint(v) },
		},
		{
			label: "Shuffle interval", min: 0, max: int(scramble.MaxShuffleInterval / time.Second),
			get:    func(g *scramble.GridConfig) int { return int(g.ShuffleInterval() / time.Second) },
			set:    func(g *scramble.GridConfig, v int) { g.SetShuffleInterval(time.Duration(v) * time.Second) },
			format: func(v int) string { return fmt.Sprintf("%ds", v) },
		},
		{
			label: "Color shift", min: 0, max: 1,
			get: func(g *scramble.GridConfig) int {
				if g.ColorShift() {
					return 1
				}
				return 0
			},
			set: func(g *scramble.GridConfig, v int) { g.SetColorShift(v == 1) },
			format: func(v int) string {
				if v == 1 {
					return "on"
				}
				return "off"
			},
		},
	}
}

// adjust moves c by delta within its bounds.
func (c control) adjust(g *scramble.GridConfig, delta int) {
	c.set(g, min(max(c.get(g)+delta, c.min), c.max))
}

// slider renders the position of v within [c.min, c.max].
func (c control) slider(v int) string {
	filled := sliderWidth
	if span := c.max - c.min; span > 0 {
		filled = (v - c.min) * sliderWidth / span
	}
	return panelBarStyle.Render(strings.Repeat("━", filled)) +
		panelDimStyle.Render(strings.Repeat("─", sliderWidth-filled))
}

// =============================================================================
// PanelModel - Interactive scrambler controls
// =============================================================================

// frameMsg carries one captured frame, or the error that ended capture.
type frameMsg struct {
	frame frame.Frame
	err   error
}

// PanelModel is the bubbletea model for the live control panel. Frames are
// captured by a command and scrambled in Update, so the grid config is only
// ever touched from the update loop.
type PanelModel struct {
	ctx      context.Context
	runner   *pipeline.Runner
	controls []control
	initial  []int
	Cursor   int
	Err      error
	Width    int
}

// NewPanelModel creates a panel driving runner. The starting grid values are
// remembered for the reset key.
func NewPanelModel(ctx context.Context, runner *pipeline.Runner) PanelModel {
	controls := gridControls()
	grid := runner.Scrambler.Config()
	initial := make([]int, len(controls))
	for i, c := range controls {
		initial[i] = c.get(grid)
	}
	return PanelModel{
		ctx:      ctx,
		runner:   runner,
		controls: controls,
		initial:  initial,
	}
}

func (m PanelModel) nextFrame() tea.Msg {
	f, err := m.runner.Capture(m.ctx)
	return frameMsg{frame: f, err: err}
}

func (m PanelModel) Init() tea.Cmd {
	return m.nextFrame
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	grid := m.runner.Scrambler.Config()

	switch msg := msg.(type) {
	case frameMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, tea.Quit
		}
		if err := m.runner.Render(m.ctx, msg.frame); err != nil {
			m.Err = err
			return m, tea.Quit
		}
		return m, m.nextFrame
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.controls)-1 {
				m.Cursor++
			}
		case "left", "h", "-":
			m.controls[m.Cursor].adjust(grid, -1)
		case "right", "l", "+":
			m.controls[m.Cursor].adjust(grid, 1)
		case "c":
			grid.SetColorShift(!grid.ColorShift())
		case "s":
			m.runner.Scrambler.Reshuffle()
		case "r":
			for i, c := range m.controls {
				c.set(grid, m.initial[i])
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m PanelModel) View() string {
	var b strings.Builder
	grid := m.runner.Scrambler.Config()

	b.WriteString(StyleTitle.Render("Scrambler"))
	b.WriteString("\n")
	b.WriteString(panelDimStyle.Render("↑/↓ select  ←/→ adjust  c color shift  s reshuffle  r reset  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.controls))
	for i, c := range m.controls {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		v := c.get(grid)
		rows[i] = []string{cursor, c.label, c.slider(v), c.format(v)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == m.Cursor && col != 2 {
				return panelSelectedStyle
			}
			return panelNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	s := m.runner.Stats()
	b.WriteString(panelDimStyle.Render(fmt.Sprintf("  %d frames  %d reshuffles  %.1f fps  last: %s",
		s.Frames, s.Reshuffles, s.FPS(), m.runner.Scrambler.LastReason())))
	return b.String()
}

// runPanel runs the control panel until the user quits or capture fails,
// then closes the runner. Cancelling ctx is a clean exit.
//
// The model captures under its own context, cancelled as soon as the program
// returns, so the read still pending on quit ends as a cancellation rather
// than a capture failure.
func runPanel(ctx context.Context, runner *pipeline.Runner) error {
	captureCtx, stopCapture := context.WithCancel(ctx)
	defer stopCapture()

	p := tea.NewProgram(NewPanelModel(captureCtx, runner), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	stopCapture()
	closeErr := runner.Close()

	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	if m, ok := final.(PanelModel); ok && m.Err != nil && ctx.Err() == nil {
		return m.Err
	}
	if closeErr != nil {
		loggerFromContext(ctx).Debug("close", "error", closeErr)
	}
	return nil
}
