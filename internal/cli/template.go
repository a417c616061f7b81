package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bizcanvas/pkg/canvas"
	"github.com/matzehuels/bizcanvas/pkg/note"
)

// templateCommand creates the template command group.
func (c *CLI) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "List and inspect canvas templates",
	}

	cmd.AddCommand(c.templateListCommand())
	cmd.AddCommand(c.templateShowCommand())
	return cmd
}

func (c *CLI) templateListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available canvas templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Templates"))
			printNewline()
			for _, t := range canvas.List() {
				auto := ""
				if t.AutoPlace {
					auto = StyleSuccess.Render(" auto-place")
				}
				fmt.Printf("  %s %-12s %s%s\n",
					StyleHighlight.Render(t.Icon),
					t.ID,
					StyleDim.Render(t.Name),
					auto)
			}
			printNewline()
			printNextStep("Inspect one", "bizcanvas template show swot")
			return nil
		},
	}
}

func (c *CLI) templateShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template's zones and placement rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := canvas.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown template %q (try 'bizcanvas template list')", args[0])
			}

			fmt.Println(StyleTitle.Render(t.Icon + " " + t.Name))
			printKeyValue("id", t.ID)
			printKeyValue("size", fmt.Sprintf("%.0f × %.0f", t.DefaultSize.Width, t.DefaultSize.Height))
			printKeyValue("auto-place", fmt.Sprintf("%t", t.AutoPlace))
			printNewline()

			if len(t.Zones) == 0 {
				printDetail("free-form template, no zones")
				return nil
			}

			fmt.Println(StyleTitle.Render("Zones"))
			for _, z := range t.Zones {
				types := "manual only"
				if len(z.AllowedTypes) > 0 {
					types = "accepts " + strings.Join(z.AllowedTypes, ", ")
				}
				fmt.Printf("  %s %-14s %s\n",
					z.Icon, z.ID,
					StyleDim.Render(fmt.Sprintf("at (%.0f,%.0f) %.0f×%.0f, %s",
						z.Position.X, z.Position.Y, z.Size.Width, z.Size.Height, types)))
			}
			printNewline()
			printDetail("note types: %s", strings.Join(typeNames(), ", "))
			return nil
		},
	}
}

func typeNames() []string {
	types := note.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
