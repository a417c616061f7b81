package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
	"github.com/matzehuels/bizcanvas/pkg/store"
	"github.com/matzehuels/bizcanvas/pkg/view"
)

// viewCommand creates the view command: a live terminal viewer for a
// local canvas.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [canvas-id]",
		Short: "Render a canvas in the terminal, live",
		Long: `Render a canvas in the terminal, live.

The viewer polls the canvas twice a second and re-renders only when it
actually changed, so edits from other terminals show up as they land.
Without an argument an interactive canvas picker opens.

Keys: arrows/hjkl pan · +/- zoom · q quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			var cv *canvas.Canvas
			if len(args) == 1 {
				cv, err = c.resolveCanvas(s, args[0])
				if err != nil {
					return err
				}
			} else {
				cv, err = c.pickCanvas(s)
				if err != nil || cv == nil {
					return err
				}
			}

			model := newViewerModel(s, cv)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// pickCanvas runs the interactive canvas selector. A nil result means the
// user backed out.
func (c *CLI) pickCanvas(s *store.Store) (*canvas.Canvas, error) {
	canvases, err := s.ListCanvases("")
	if err != nil {
		return nil, err
	}
	if len(canvases) == 0 {
		printInfo("No canvases yet")
		printNextStep("Create one", "bizcanvas canvas create \"Q3 strategy\" -t swot")
		return nil, nil
	}

	final, err := tea.NewProgram(NewCanvasListModel(canvases)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(CanvasListModel)
	if !ok || m.Selected == nil {
		return nil, nil
	}
	return s.GetCanvas(m.Selected.ID)
}

// =============================================================================
// viewerModel - Live single-user canvas viewer
// =============================================================================

type pollMsg time.Time

type viewerModel struct {
	store  *store.Store
	canvas *canvas.Canvas
	tmpl   canvas.Template
	titles map[string]string

	viewport canvas.Viewport
	width    int
	height   int
	err      error
}

func newViewerModel(s *store.Store, cv *canvas.Canvas) viewerModel {
	tmpl, _ := cv.Template()
	m := viewerModel{
		store:    s,
		canvas:   cv,
		tmpl:     tmpl,
		viewport: cv.Viewport,
		width:    100,
		height:   30,
	}
	m.titles = m.loadTitles()
	return m
}

func pollTick() tea.Cmd {
	return tea.Tick(pollInterval*time.Millisecond, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m viewerModel) Init() tea.Cmd {
	return pollTick()
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Persist where the user left the viewport.
			m.store.UpdateViewport(m.canvas.ID, m.viewport)
			return m, tea.Quit
		case "left", "h":
			m.viewport = m.viewport.Pan(-canvas.PanStep, 0)
		case "right", "l":
			m.viewport = m.viewport.Pan(canvas.PanStep, 0)
		case "up", "k":
			m.viewport = m.viewport.Pan(0, -canvas.PanStep)
		case "down", "j":
			m.viewport = m.viewport.Pan(0, canvas.PanStep)
		case "+", "=":
			m.viewport = m.viewport.ZoomBy(canvas.ZoomStep)
		case "-", "_":
			m.viewport = m.viewport.ZoomBy(-canvas.ZoomStep)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pollMsg:
		fresh, err := m.store.GetCanvas(m.canvas.ID)
		if err != nil {
			m.err = err
			return m, pollTick()
		}
		if fresh == nil {
			m.err = fmt.Errorf("canvas was deleted")
			return m, tea.Quit
		}
		// Re-render only when something actually changed.
		if !fresh.UpdatedAt.Equal(m.canvas.UpdatedAt) {
			m.canvas = fresh
			m.titles = m.loadTitles()
		}
		return m, pollTick()
	}
	return m, nil
}

func (m viewerModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s", m.tmpl.Icon, m.canvas.Name)
	status := fmt.Sprintf("(%.0f,%.0f) ×%.1f · %d notes",
		m.viewport.X, m.viewport.Y, m.viewport.Zoom, len(m.canvas.Nodes))
	b.WriteString(StyleTitle.Render(header))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(status))
	b.WriteString("\n")

	frameH := m.height - 3
	if frameH < 5 {
		frameH = 5
	}

	snapshot := *m.canvas
	snapshot.Viewport = m.viewport
	for _, line := range view.Frame(&snapshot, m.tmpl, m.titles, m.width, frameH) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("arrows/hjkl pan · +/- zoom · q quit"))
	return b.String()
}

// loadTitles resolves placed content ids to display titles.
func (m viewerModel) loadTitles() map[string]string {
	titles := make(map[string]string, len(m.canvas.Nodes))
	for _, n := range m.canvas.Nodes {
		nt, err := m.store.GetNote(n.ContentID)
		if err != nil || nt == nil {
			continue
		}
		titles[n.ContentID] = nt.Type.Icon() + " " + nt.Title
	}
	return titles
}
