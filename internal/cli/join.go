package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
	"github.com/matzehuels/bizcanvas/pkg/collab"
	"github.com/matzehuels/bizcanvas/pkg/config"
	"github.com/matzehuels/bizcanvas/pkg/session"
	"github.com/matzehuels/bizcanvas/pkg/store"
	"github.com/matzehuels/bizcanvas/pkg/view"
)

// joinCommand creates the join command: a live viewer for a shared canvas
// room synchronized over the relay.
func (c *CLI) joinCommand() *cobra.Command {
	var (
		name     string
		color    string
		relayURL string
	)

	cmd := &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a shared canvas room over the relay",
		Long: `Join a shared canvas room over the relay.

Edits from other participants appear as they happen; your display name
and color are visible to everyone in the room. The connection indicator
shows LIVE while connected and OFFLINE while reconnecting - edits made
offline merge back in when the connection returns.

Keys: arrows/hjkl pan · +/- zoom · q quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if relayURL == "" {
				relayURL = cfg.Relay.URL
			}

			identity, err := c.identity(cmd, name, color, cfg.Identity)
			if err != nil {
				return err
			}

			client, err := collab.NewClient(relayURL, args[0], identity.Name, identity.Color, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			defer client.Close()

			// Titles resolve best-effort from the local note store; shared
			// nodes without a local note render their content id.
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			model := newJoinModel(client, s, args[0])
			p := tea.NewProgram(model, tea.WithAltScreen())

			client.OnChange(func() { p.Send(roomChangedMsg{}) })
			client.OnPresence(func(ps []collab.Participant) { p.Send(presenceMsg(ps)) })
			client.OnStatus(func(st collab.Status) { p.Send(statusMsg(st)) })
			client.Connect(cmd.Context())

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (default: saved identity or config)")
	cmd.Flags().StringVar(&color, "color", "", "display color (hex)")
	cmd.Flags().StringVar(&relayURL, "relay", "", "relay URL (default: config)")
	return cmd
}

// identity resolves the participant identity: explicit flags beat the
// saved session, which beats the config. The result is saved so the next
// join reuses it.
func (c *CLI) identity(cmd *cobra.Command, name, color string, cfg config.IdentityConfig) (*session.Session, error) {
	cfgName, cfgColor := cfg.Name, cfg.Color

	cliStore, cleanup, err := identityStore(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	sess, err := cliStore.GetSession(cmd.Context())
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess, err = session.New(cfgName, cfgColor, session.DefaultTTL)
		if err != nil {
			return nil, err
		}
	}
	if name != "" {
		sess.Name = name
	}
	if color != "" {
		sess.Color = color
	}
	if sess.Name == "" {
		sess.Name = "agent"
	}

	if err := cliStore.SaveSession(cmd.Context(), sess); err != nil {
		loggerFromContext(cmd.Context()).Debug("could not save identity", "err", err)
	}
	return sess, nil
}

// identityStore builds the identity backend the config selects: the
// session file on this machine, or Redis when several machines share one
// identity database.
func identityStore(ctx context.Context, cfg config.IdentityConfig) (*session.CLIStore, func(), error) {
	switch cfg.Store {
	case "", "file":
		dir, err := sessionDir()
		if err != nil {
			return nil, nil, err
		}
		cliStore, err := session.NewCLIStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return cliStore, func() {}, nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("identity.store = %q requires identity.redis_addr in the config", cfg.Store)
		}
		rs, err := session.NewRedisStore(ctx, session.RedisConfig{Addr: cfg.RedisAddr})
		if err != nil {
			return nil, nil, err
		}
		return session.NewCLIStoreWith(rs), func() { rs.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown identity store %q (file or redis)", cfg.Store)
	}
}

// =============================================================================
// joinModel - Live shared-room viewer
// =============================================================================

type (
	roomChangedMsg struct{}
	presenceMsg    []collab.Participant
	statusMsg      collab.Status
)

type joinModel struct {
	client *collab.Client
	store  *store.Store
	roomID string

	status       collab.Status
	participants []collab.Participant

	viewport canvas.Viewport
	width    int
	height   int
}

func newJoinModel(client *collab.Client, s *store.Store, roomID string) joinModel {
	return joinModel{
		client:   client,
		store:    s,
		roomID:   roomID,
		status:   client.Status(),
		viewport: canvas.DefaultViewport(),
		width:    100,
		height:   30,
	}
}

func (m joinModel) Init() tea.Cmd {
	return nil
}

func (m joinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.viewport = m.viewport.Pan(-canvas.PanStep, 0)
			m.client.UpdateCursor(m.viewport.X, m.viewport.Y)
		case "right", "l":
			m.viewport = m.viewport.Pan(canvas.PanStep, 0)
			m.client.UpdateCursor(m.viewport.X, m.viewport.Y)
		case "up", "k":
			m.viewport = m.viewport.Pan(0, -canvas.PanStep)
			m.client.UpdateCursor(m.viewport.X, m.viewport.Y)
		case "down", "j":
			m.viewport = m.viewport.Pan(0, canvas.PanStep)
			m.client.UpdateCursor(m.viewport.X, m.viewport.Y)
		case "+", "=":
			m.viewport = m.viewport.ZoomBy(canvas.ZoomStep)
		case "-", "_":
			m.viewport = m.viewport.ZoomBy(-canvas.ZoomStep)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case roomChangedMsg:
		// State lives in the client's replica; the re-render is enough.

	case presenceMsg:
		m.participants = msg

	case statusMsg:
		m.status = collab.Status(msg)
	}
	return m, nil
}

func (m joinModel) View() string {
	var b strings.Builder

	indicator := styleOffline.Render("OFFLINE")
	if m.status == collab.StatusConnected {
		indicator = styleLive.Render("LIVE")
	} else if m.status == collab.StatusConnecting {
		indicator = StyleWarning.Render("CONNECTING")
	}

	name := m.client.Meta("name")
	if name == "" {
		name = m.roomID
	}
	b.WriteString(StyleTitle.Render(name))
	b.WriteString("  ")
	b.WriteString(indicator)
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("(%.0f,%.0f) ×%.1f",
		m.viewport.X, m.viewport.Y, m.viewport.Zoom)))
	b.WriteString("\n")

	frameH := m.height - 4
	if frameH < 5 {
		frameH = 5
	}

	cv, tmpl := m.sharedCanvas()
	for _, line := range view.Frame(cv, tmpl, m.titles(cv), m.width, frameH) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.roster())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows/hjkl pan · +/- zoom · q quit"))
	return b.String()
}

// sharedCanvas projects the room's replica into a renderable canvas.
func (m joinModel) sharedCanvas() (*canvas.Canvas, canvas.Template) {
	nodes := m.client.Nodes()
	cv := &canvas.Canvas{
		Name:     m.client.Meta("name"),
		Viewport: m.viewport,
		Nodes:    make([]canvas.Node, len(nodes)),
	}
	for i, n := range nodes {
		cv.Nodes[i] = canvas.Node{
			ID:        n.ID,
			ContentID: n.ContentID,
			Position:  canvas.Position{X: n.X, Y: n.Y},
			Size:      canvas.Size{Width: canvas.DefaultNodeWidth, Height: canvas.DefaultNodeHeight},
			ZoneID:    n.ZoneID,
			Color:     n.Color,
			Style:     canvas.StyleSticky,
		}
	}

	tmpl, _ := canvas.Get(m.client.Meta("template"))
	return cv, tmpl
}

func (m joinModel) titles(cv *canvas.Canvas) map[string]string {
	titles := make(map[string]string, len(cv.Nodes))
	for _, n := range cv.Nodes {
		nt, err := m.store.GetNote(n.ContentID)
		if err != nil || nt == nil {
			continue
		}
		titles[n.ContentID] = nt.Type.Icon() + " " + nt.Title
	}
	return titles
}

// roster renders the presence line: each participant in their own color.
func (m joinModel) roster() string {
	if len(m.participants) == 0 {
		return listDimStyle.Render("nobody here yet")
	}

	parts := make([]string, 0, len(m.participants))
	for _, p := range m.participants {
		label := p.Name
		if p.Cursor != nil {
			label += fmt.Sprintf(" (%.0f,%.0f)", p.Cursor.X, p.Cursor.Y)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
		parts = append(parts, style.Render("● "+label))
	}
	return strings.Join(parts, listDimStyle.Render("  ·  "))
}
