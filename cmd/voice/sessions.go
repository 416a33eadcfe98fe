package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/share"
	"github.com/alkime/voicescribe/pkg/collections"
	"github.com/dustin/go-humanize"
)

// SessionsCmd groups session subcommands.
type SessionsCmd struct {
	List   SessionsListCmd   `cmd:"" default:"1" help:"List saved sessions"`
	Show   SessionsShowCmd   `cmd:"" help:"Print a session's transcript"`
	Rename SessionsRenameCmd `cmd:"" help:"Rename a session"`
	Delete SessionsDeleteCmd `cmd:"" help:"Delete a session"`
	Export SessionsExportCmd `cmd:"" help:"Write a session's transcript to a text file"`
}

// withSessions opens the session store for the duration of fn.
func withSessions(g *Globals, fn func(m *session.Manager) error) error {
	cfg, err := g.env()
	if err != nil {
		return err
	}

	db, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(session.NewManager(db))
}

// SessionsListCmd lists saved sessions.
type SessionsListCmd struct {
	Search string `flag:"" short:"s" help:"Only list sessions whose name or text contains this (case-insensitive)"`
}

// Run executes the list command.
func (c *SessionsListCmd) Run(g *Globals) error {
	return withSessions(g, func(m *session.Manager) error {
		list := m.List()
		if q := strings.ToLower(strings.TrimSpace(c.Search)); q != "" {
			list = collections.Filter(list, func(s session.Session) bool {
				return strings.Contains(strings.ToLower(s.Name), q) ||
					strings.Contains(strings.ToLower(s.Text), q)
			})
		}

		if len(list) == 0 {
			fmt.Println("No saved sessions.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSAVED\tWORDS")
		for _, s := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, humanize.Time(s.Date), humanize.Comma(int64(wordCount(s.Text))))
		}

		return tw.Flush()
	})
}

// SessionsShowCmd prints a session.
type SessionsShowCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the show command.
func (c *SessionsShowCmd) Run(g *Globals) error {
	return withSessions(g, func(m *session.Manager) error {
		s, err := m.Load(c.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n\n%s\n", s.Name, s.Date.Format("2006-01-02 15:04"), s.Text)

		return nil
	})
}

// SessionsRenameCmd renames a session.
type SessionsRenameCmd struct {
	ID   string `arg:"" help:"Session ID"`
	Name string `arg:"" help:"New name"`
}

// Run executes the rename command.
func (c *SessionsRenameCmd) Run(g *Globals) error {
	return withSessions(g, func(m *session.Manager) error {
		if err := m.Rename(c.ID, c.Name); err != nil {
			return fmt.Errorf("failed to rename session: %w", err)
		}

		fmt.Printf("renamed to %q\n", c.Name)

		return nil
	})
}

// SessionsDeleteCmd deletes a session.
type SessionsDeleteCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the delete command. Deleting an unknown ID is not an error.
//
//nolint:unparam // error return required by Kong interface
func (c *SessionsDeleteCmd) Run(g *Globals) error {
	return withSessions(g, func(m *session.Manager) error {
		m.Delete(c.ID)
		fmt.Println("deleted")

		return nil
	})
}

// SessionsExportCmd writes a transcript to disk.
type SessionsExportCmd struct {
	ID  string `arg:"" help:"Session ID"`
	Dir string `flag:"" short:"o" help:"Output directory (default: downloads folder in the data directory)"`
}

// Run executes the export command.
func (c *SessionsExportCmd) Run(g *Globals) error {
	cfg, err := g.env()
	if err != nil {
		return err
	}

	db, dirs, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := session.NewManager(db).Load(c.ID)
	if errors.Is(err, session.ErrNotFound) {
		return fmt.Errorf("no session with id %q: %w", c.ID, err)
	}
	if err != nil {
		return err
	}

	dir := firstNonEmpty(c.Dir, dirs.Downloads)

	path, err := share.NewDownloader(dir).Download(s.Filename(), []byte(s.Text+"\n"))
	if err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	fmt.Println(path)

	return nil
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
