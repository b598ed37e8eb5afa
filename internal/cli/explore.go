package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/riverplot/pkg/errors"
	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/render/sink"
)

// Pixel size of one terminal cell. Cells are roughly twice as tall as wide.
const (
	cellWidth  = 8
	cellHeight = 16
)

// exploreCommand creates the explore command, an interactive terminal view
// of the chart driven by the mouse.
func (c *CLI) exploreCommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the river chart in the terminal with the mouse",
		Long: `Explore the river chart in the terminal.

Move the mouse over a point to show its tooltip. Tab and shift+tab step
through the rivers, q quits. The chart follows the terminal size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), logFile)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the screen is in use")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, logFile string) error {
	popts, err := c.baseOptions()
	if err != nil {
		return err
	}
	runner := c.newRunner()
	ds, err := runner.Load(ctx, popts)
	if err != nil {
		return err
	}
	vp, err := runner.Viewport(ctx, ds, popts)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; keep log lines off it.
	restore, err := c.redirectLogs(logFile)
	if err != nil {
		return err
	}
	defer restore()

	p := tea.NewProgram(newExploreModel(vp, ds.Source),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "explore")
	}
	return nil
}

// =============================================================================
// exploreModel - Interactive chart viewport
// =============================================================================

// exploreModel is the bubbletea model wrapping a [plot.Viewport]. Every
// input event updates the viewport; the scene is redrawn only when the
// viewport reports itself dirty.
type exploreModel struct {
	vp     *plot.Viewport
	source string
	cols   int
	rows   int
	frame  string
}

func newExploreModel(vp *plot.Viewport, source string) exploreModel {
	return exploreModel{vp: vp, source: source}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.step(1)
		case "shift+tab":
			m.step(-1)
		}
	case tea.WindowSizeMsg:
		// The last row holds the status line.
		m.cols, m.rows = msg.Width, max(msg.Height-1, 0)
		m.vp.Resize(float64(m.cols*cellWidth), float64(m.rows*cellHeight))
	case tea.MouseMsg:
		x, y := cellCenter(msg.X, msg.Y)
		m.vp.PointerMove(x, y)
	}
	if m.vp.Dirty() {
		m.redraw()
	}
	return m, nil
}

// step moves the selection to the next plottable record in direction dir.
func (m *exploreModel) step(dir int) {
	c := m.vp.Chart()
	n := len(c.Records())
	if n == 0 {
		return
	}
	i, ok := m.vp.Selection().Index()
	if !ok {
		i = -1
		if dir < 0 {
			i = n
		}
	}
	for range n {
		i = (i + dir + n) % n
		if _, _, ok := c.Position(i, m.vp.Frame()); ok {
			m.vp.Select(plot.Select(i))
			return
		}
	}
}

func (m *exploreModel) redraw() {
	term := sink.NewTerminal(m.cols, m.rows, cellWidth, cellHeight)
	m.vp.RenderIfDirty(term)
	m.frame = term.String()
}

func (m exploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	if m.rows > 0 {
		b.WriteString("\n")
	}
	b.WriteString(m.status())
	return b.String()
}

func (m exploreModel) status() string {
	c := m.vp.Chart()
	parts := []string{
		StyleTitle.Render(appName),
		StyleDim.Render(fmt.Sprintf("%d rivers from %s", len(c.Records()), m.source)),
	}
	if i, ok := m.vp.Selection().Index(); ok {
		parts = append(parts, StyleHighlight.Render(c.Records()[i].Name))
	}
	parts = append(parts,
		StyleDim.Render("cursor: "+m.vp.Cursor().String()),
		StyleDim.Render("tab next · q quit"),
	)
	return strings.Join(parts, StyleDim.Render(" · "))
}

// cellCenter converts a terminal cell to the pixel at its center.
func cellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * cellWidth, (float64(row) + 0.5) * cellHeight
}
