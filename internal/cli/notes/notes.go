package notes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/constants"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
)

type NoteCmd struct {
	Add    NoteAddCmd    `cmd:"" help:"Add a note to the shared log."`
	Remove NoteRemoveCmd `cmd:"" help:"Remove a note."`
	List   NoteListCmd   `cmd:"" help:"List notes, newest first." default:"1"`
}

type NoteAddCmd struct {
	Content string `arg:"" help:"Note text."`
	Author  string `short:"a" required:"" help:"Who wrote it (A|B)."`
	Tags    string `short:"t" help:"Comma-separated tags (e.g. school,medical)."`
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	author, err := models.ParseGuardian(c.Author)
	if err != nil {
		return err
	}

	note := models.Note{
		ID:      household.NewID(),
		Date:    ctx.Clock().Format(constants.TimestampFormat),
		Author:  author,
		Content: strings.TrimSpace(c.Content),
		Tags:    models.ParseTags(c.Tags),
	}

	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.AddNote(note)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Added note by %s (ID: %s)\n", h.Setup.Name(author), note.ID)
	return nil
}

type NoteRemoveCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NoteRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.RemoveNote(c.ID)
	}); err != nil {
		return err
	}
	ctx.Printf("✓ Removed note %s\n", c.ID)
	return nil
}

type NoteListCmd struct {
	Tag    string `short:"t" help:"Only list notes with this tag."`
	Author string `short:"a" help:"Only list notes by this parent (A|B)."`
	Limit  int    `short:"n" default:"0" help:"Show at most this many notes (0 for all)."`
}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	var author models.Guardian
	if c.Author != "" {
		if author, err = models.ParseGuardian(c.Author); err != nil {
			return err
		}
	}

	shown := 0
	for _, n := range h.Notes {
		if c.Tag != "" && !slices.Contains(n.Tags, c.Tag) {
			continue
		}
		if author != models.GuardianNone && n.Author != author {
			continue
		}
		if c.Limit > 0 && shown == c.Limit {
			break
		}

		if shown > 0 {
			ctx.Println()
		}
		header := fmt.Sprintf("%s  %s", n.Date, h.Setup.Name(n.Author))
		if len(n.Tags) > 0 {
			header += "  #" + strings.Join(n.Tags, " #")
		}
		ctx.Println(header)
		ctx.Printf("  %s\n", strings.ReplaceAll(n.Content, "\n", "\n  "))
		ctx.Printf("  (ID: %s)\n", n.ID)
		shown++
	}

	if shown == 0 {
		ctx.Println("No notes found.")
	}
	return nil
}
