package main

import (
	"fmt"

	"github.com/alkime/voicescribe/internal/theme"
)

// ThemeCmd shows or changes the persisted theme.
type ThemeCmd struct {
	Get    ThemeGetCmd    `cmd:"" default:"1" help:"Print the current theme"`
	Set    ThemeSetCmd    `cmd:"" help:"Set the theme"`
	Toggle ThemeToggleCmd `cmd:"" help:"Switch between light and dark"`
}

func withTheme(g *Globals, fn func(p *theme.Preference) error) error {
	cfg, err := g.env()
	if err != nil {
		return err
	}

	db, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(theme.NewPreference(db, theme.Ambient))
}

// ThemeGetCmd prints the theme.
type ThemeGetCmd struct{}

// Run executes the get command.
func (c *ThemeGetCmd) Run(g *Globals) error {
	return withTheme(g, func(p *theme.Preference) error {
		fmt.Println(p.Get())
		return nil
	})
}

// ThemeSetCmd stores a theme.
type ThemeSetCmd struct {
	Theme string `arg:"" enum:"light,dark" help:"light or dark"`
}

// Run executes the set command.
func (c *ThemeSetCmd) Run(g *Globals) error {
	t, err := theme.Parse(c.Theme)
	if err != nil {
		return err
	}

	return withTheme(g, func(p *theme.Preference) error {
		if err := p.Set(t); err != nil {
			return err
		}
		fmt.Println(t)

		return nil
	})
}

// ThemeToggleCmd flips the theme.
type ThemeToggleCmd struct{}

// Run executes the toggle command.
func (c *ThemeToggleCmd) Run(g *Globals) error {
	return withTheme(g, func(p *theme.Preference) error {
		fmt.Println(p.Toggle())
		return nil
	})
}
