package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bizcanvas/pkg/note"
	"github.com/matzehuels/bizcanvas/pkg/store"
)

// noteCommand creates the note command group.
func (c *CLI) noteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Create, search, and tag notes",
	}

	cmd.AddCommand(c.noteCreateCommand())
	cmd.AddCommand(c.noteListCommand())
	cmd.AddCommand(c.noteShowCommand())
	cmd.AddCommand(c.noteSearchCommand())
	cmd.AddCommand(c.noteTagCommand())
	cmd.AddCommand(c.noteDeleteCommand())
	return cmd
}

func (c *CLI) noteCreateCommand() *cobra.Command {
	var (
		typ     string
		content string
		role    string
		quote   string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a note",
		Long: `Create a note.

The type determines which template zones will accept the note during
auto-placement. Persona notes may carry structured metadata via --role
and --quote.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			var meta note.Metadata
			if role != "" || quote != "" {
				meta.Persona = &note.PersonaMeta{Role: role, Quote: quote}
			}

			n, err := s.CreateNote(note.Type(typ), args[0], content, meta)
			if err != nil {
				if errors.Is(err, store.ErrInvalidNoteType) {
					return fmt.Errorf("invalid note type %q (one of: %s)", typ, strings.Join(typeNames(), ", "))
				}
				return err
			}

			printSuccess("Created %s note %s", n.Type, StyleHighlight.Render(n.Title))
			printKeyValue("id", n.ID)
			printNextStep("Place it", "bizcanvas canvas add <canvas-id> "+n.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "note", "note type")
	cmd.Flags().StringVarP(&content, "content", "c", "", "body text")
	cmd.Flags().StringVar(&role, "role", "", "persona role (persona notes)")
	cmd.Flags().StringVar(&quote, "quote", "", "persona quote (persona notes)")
	return cmd
}

func (c *CLI) noteListCommand() *cobra.Command {
	var (
		typ   string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			notes, err := s.ListNotes(note.Type(typ), limit)
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "only notes of this type")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum results")
	return cmd
}

func (c *CLI) noteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a note with its metadata and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.GetNote(args[0])
			if err != nil {
				return err
			}
			if n == nil {
				return fmt.Errorf("no note %q", args[0])
			}

			fmt.Println(StyleTitle.Render(n.Type.Icon() + " " + n.Title))
			printKeyValue("id", n.ID)
			printKeyValue("type", string(n.Type))
			printKeyValue("created", n.CreatedAt.Format("Jan 2 15:04:05"))
			if n.Content != "" {
				printNewline()
				fmt.Println("  " + n.Content)
			}
			if p := n.Metadata.Persona; p != nil {
				printNewline()
				if p.Role != "" {
					printKeyValue("role", p.Role)
				}
				if p.Quote != "" {
					printKeyValue("quote", "“"+p.Quote+"”")
				}
			}

			tags, err := s.NoteTags(n.ID)
			if err != nil {
				return err
			}
			if len(tags) > 0 {
				printNewline()
				printDetail("tags: %s", strings.Join(tags, ", "))
			}
			return nil
		},
	}
}

func (c *CLI) noteSearchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search note titles and bodies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			notes, err := s.SearchNotes(args[0], limit)
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum results")
	return cmd
}

func (c *CLI) noteTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <note-id> <tag>...",
		Short: "Tag a note (tags are created on first use)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			for _, tag := range args[1:] {
				if err := s.TagNote(args[0], tag); err != nil {
					return err
				}
			}
			printSuccess("Tagged note with %s", strings.Join(args[1:], ", "))
			return nil
		},
	}
}

func (c *CLI) noteDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteNote(args[0]); err != nil {
				return err
			}
			printSuccess("Deleted note")
			return nil
		},
	}
}

func printNotes(notes []note.Note) {
	if len(notes) == 0 {
		printInfo("No notes")
		return
	}
	for _, n := range notes {
		fmt.Printf("  %s %-32s %s\n",
			n.Type.Icon(),
			n.Title,
			StyleDim.Render(fmt.Sprintf("%s · %s · %s", n.ID[:8], n.Type, n.UpdatedAt.Format("Jan 2 15:04"))))
	}
}
