package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CanvasListModel - Interactive canvas selection
// =============================================================================

// CanvasListModel is the bubbletea model for interactive canvas selection.
type CanvasListModel struct {
	Canvases []canvas.Canvas
	Cursor   int
	Selected *canvas.Canvas
	Height   int
	Offset   int
}

// NewCanvasListModel creates a new canvas list model.
func NewCanvasListModel(canvases []canvas.Canvas) CanvasListModel {
	return CanvasListModel{
		Canvases: canvases,
		Height:   15,
	}
}

func (m CanvasListModel) Init() tea.Cmd {
	return nil
}

func (m CanvasListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Canvases)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			cv := m.Canvases[m.Cursor]
			m.Selected = &cv
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CanvasListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Canvas"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Canvases) {
		end = len(m.Canvases)
	}

	for i := m.Offset; i < end; i++ {
		cv := m.Canvases[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		icon := "▢"
		if t, ok := canvas.Get(cv.TemplateID); ok {
			icon = t.Icon
		}

		line := fmt.Sprintf("%s%s %-24s %s", cursor, icon, cv.Name,
			listDimStyle.Render(cv.TemplateID+" · "+formatRelativeTime(cv.UpdatedAt)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Canvases))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
