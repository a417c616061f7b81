package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
	"github.com/matzehuels/bizcanvas/pkg/store"
)

// canvasCommand creates the canvas command group.
func (c *CLI) canvasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Create, inspect, and manipulate canvases",
	}

	cmd.AddCommand(c.canvasCreateCommand())
	cmd.AddCommand(c.canvasListCommand())
	cmd.AddCommand(c.canvasShowCommand())
	cmd.AddCommand(c.canvasDeleteCommand())
	cmd.AddCommand(c.canvasAddCommand())
	cmd.AddCommand(c.canvasMoveCommand())
	cmd.AddCommand(c.canvasRemoveCommand())
	cmd.AddCommand(c.canvasViewportCommand())
	cmd.AddCommand(c.canvasAutoplaceCommand())
	cmd.AddCommand(c.canvasExportCommand())
	cmd.AddCommand(c.canvasImportCommand())
	return cmd
}

func (c *CLI) canvasCreateCommand() *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a canvas from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := s.CreateCanvas(args[0], template, nil)
			if err != nil {
				if errors.Is(err, store.ErrTemplateNotFound) {
					return fmt.Errorf("unknown template %q (try 'bizcanvas template list')", template)
				}
				return err
			}

			printSuccess("Created canvas %s", StyleHighlight.Render(cv.Name))
			printKeyValue("id", cv.ID)
			printKeyValue("template", cv.TemplateID)
			printNewline()
			printNextStep("View it", "bizcanvas view "+cv.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "brainstorm", "template id (see 'template list')")
	return cmd
}

func (c *CLI) canvasListCommand() *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List canvases, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			canvases, err := s.ListCanvases(template)
			if err != nil {
				return err
			}
			if len(canvases) == 0 {
				printInfo("No canvases yet")
				printNextStep("Create one", "bizcanvas canvas create \"Q3 strategy\" -t swot")
				return nil
			}

			fmt.Println(StyleTitle.Render("Canvases"))
			printNewline()
			for _, cv := range canvases {
				icon := "▢"
				if t, ok := canvas.Get(cv.TemplateID); ok {
					icon = t.Icon
				}
				fmt.Printf("  %s %-24s %s\n",
					StyleHighlight.Render(icon),
					cv.Name,
					StyleDim.Render(fmt.Sprintf("%s · %s · updated %s",
						cv.ID[:8], cv.TemplateID, cv.UpdatedAt.Format("Jan 2 15:04"))))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "only canvases of this template")
	return cmd
}

func (c *CLI) canvasShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <canvas-id>",
		Short: "Show a canvas and its placed notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := c.resolveCanvas(s, args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(cv.Name))
			printKeyValue("id", cv.ID)
			printKeyValue("template", cv.TemplateID)
			printKeyValue("viewport", fmt.Sprintf("(%.0f, %.0f) zoom %.1f", cv.Viewport.X, cv.Viewport.Y, cv.Viewport.Zoom))
			printKeyValue("updated", cv.UpdatedAt.Format("Jan 2 15:04:05"))

			tmpl, _ := cv.Template()
			printCanvasStats(len(cv.Nodes), len(tmpl.Zones))
			printNewline()

			for _, n := range cv.Nodes {
				title := n.ContentID
				if nt, err := s.GetNote(n.ContentID); err == nil && nt != nil {
					title = nt.Type.Icon() + " " + nt.Title
				}
				zone := ""
				if n.ZoneID != "" {
					zone = " " + StyleDim.Render("["+n.ZoneID+"]")
				}
				fmt.Printf("  %-30s %s%s\n", title,
					StyleDim.Render(fmt.Sprintf("(%.0f,%.0f) %s · %s", n.Position.X, n.Position.Y, n.Style, n.ID[:8])),
					zone)
			}
			return nil
		},
	}
}

func (c *CLI) canvasDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <canvas-id>",
		Short: "Delete a canvas and its placed notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := c.resolveCanvas(s, args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteCanvas(cv.ID); err != nil {
				return err
			}
			printSuccess("Deleted canvas %s", cv.Name)
			return nil
		},
	}
}

func (c *CLI) canvasAddCommand() *cobra.Command {
	var (
		x, y   float64
		zone   string
		color  string
		placed bool
	)

	cmd := &cobra.Command{
		Use:   "add <canvas-id> <note-id>",
		Short: "Place a note on a canvas",
		Long: `Place a note on a canvas.

Without --at the note lands at a pseudo-random free position inside the
template bounds. Adding a note that is already on the canvas moves it
instead of duplicating it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := c.resolveCanvas(s, args[0])
			if err != nil {
				return err
			}

			var pos *canvas.Position
			if placed {
				pos = &canvas.Position{X: x, Y: y}
			}
			n, err := s.AddNode(cv.ID, args[1], pos, zone, nil, color)
			if err != nil {
				return err
			}

			printSuccess("Placed note at (%.0f, %.0f)", n.Position.X, n.Position.Y)
			printKeyValue("node", n.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "x position (requires --at)")
	cmd.Flags().Float64Var(&y, "y", 0, "y position (requires --at)")
	cmd.Flags().BoolVar(&placed, "at", false, "use explicit --x/--y instead of a random position")
	cmd.Flags().StringVar(&zone, "zone", "", "zone id to record on the node")
	cmd.Flags().StringVar(&color, "color", "", "node color (hex)")
	return cmd
}

func (c *CLI) canvasMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <canvas-id> <node-id> <x> <y>",
		Short: "Move a placed note",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := c.resolveCanvas(s, args[0])
			if err != nil {
				return err
			}

			x, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("parse x %q: %w", args[2], err)
			}
			y, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("parse y %q: %w", args[3], err)
			}

			if err := s.MoveNode(cv.ID, args[1], canvas.Position{X: x, Y: y}); err != nil {
				if errors.Is(err, store.ErrNodeNotFound) {
					return fmt.Errorf("no node %s on canvas %s", args[1], cv.Name)
				}
				return err
			}
			printSuccess("Moved node to (%.0f, %.0f)", x, y)
			return nil
		},
	}
}

func (c *CLI) canvasRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <canvas-id> <node-id>",
		Short: "Remove a placed note from a canvas",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := c.resolveCanvas(s, args[0])
			if err != nil {
				return err
			}
			if err := s.RemoveNode(cv.ID, args[1]); err != nil {
				return err
			}
			printSuccess("Removed node")
			return nil
		},
	}
}

func (c *CLI) canvasViewportCommand() *cobra.Command {
	var (
		x, y float64
		zoom float64
	)

	cmd := &cobra.Command{
		Use:   "viewport <canvas-id>",
		Short: "Set the stored viewport of a canvas",
		Long: `Set the stored viewport of a canvas.

Zoom is clamped to [0.5, 3.0] and the offset never goes negative; out of
range values are brought back into bounds rather than rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := c.resolveCanvas(s, args[0])
			if err != nil {
				return err
			}

			v := canvas.Viewport{X: x, Y: y, Zoom: zoom}.Clamp()
			if err := s.UpdateViewport(cv.ID, v); err != nil {
				return err
			}
			printSuccess("Viewport set to (%.0f, %.0f) zoom %.1f", v.X, v.Y, v.Zoom)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "x offset")
	cmd.Flags().Float64Var(&y, "y", 0, "y offset")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor")
	return cmd
}

func (c *CLI) canvasAutoplaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "autoplace <canvas-id> <note-id>...",
		Short: "Auto-place notes into their matching template zones",
		Long: `Auto-place notes into their matching template zones.

Each note goes to the first zone whose allowed types include the note's
type, stacked top to bottom. Notes matching no zone are skipped and
reported. Re-running over already-placed notes restacks them.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cv, err := c.resolveCanvas(s, args[0])
			if err != nil {
				return err
			}
			tmpl, ok := cv.Template()
			if !ok {
				return fmt.Errorf("canvas %s references removed template %q", cv.Name, cv.TemplateID)
			}
			if !tmpl.AutoPlace {
				printWarning("template %s is free-form; nothing to auto-place", tmpl.ID)
				return nil
			}

			items := make([]canvas.Item, 0, len(args)-1)
			for _, noteID := range args[1:] {
				nt, err := s.GetNote(noteID)
				if err != nil {
					return err
				}
				if nt == nil {
					return fmt.Errorf("unknown note %q", noteID)
				}
				items = append(items, canvas.Item{ID: nt.ID, Type: string(nt.Type)})
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			placements := canvas.AutoPlace(tmpl, items)
			for _, p := range placements {
				pos := p.Position
				size := p.Size
				if _, err := s.AddNode(cv.ID, p.ContentID, &pos, p.ZoneID, &size, p.Color); err != nil {
					return err
				}
			}
			prog.done(fmt.Sprintf("Placed %d notes", len(placements)))

			if skipped := len(items) - len(placements); skipped > 0 {
				printWarning("%d notes matched no zone and were skipped", skipped)
			}
			printSuccess("Auto-placed %d of %d notes", len(placements), len(items))
			printNextStep("View the result", "bizcanvas view "+cv.ID)
			return nil
		},
	}
}

// resolveCanvas fetches a canvas by exact id or unambiguous id prefix.
func (c *CLI) resolveCanvas(s *store.Store, ref string) (*canvas.Canvas, error) {
	cv, err := s.GetCanvas(ref)
	if err != nil {
		return nil, err
	}
	if cv != nil {
		return cv, nil
	}

	// Prefix match against the listing.
	all, err := s.ListCanvases("")
	if err != nil {
		return nil, err
	}
	var matches []canvas.Canvas
	for _, candidate := range all {
		if len(ref) >= 4 && len(candidate.ID) >= len(ref) && candidate.ID[:len(ref)] == ref {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 1:
		return s.GetCanvas(matches[0].ID)
	case 0:
		return nil, fmt.Errorf("no canvas %q (try 'bizcanvas canvas list')", ref)
	default:
		return nil, fmt.Errorf("canvas id %q is ambiguous (%d matches)", ref, len(matches))
	}
}
