package main

import (
	"flag"
	"fmt"
	"sort"

	"golang.org/x/image/colornames"

	"github.com/example/designboard/internal/board"
	"github.com/example/designboard/internal/scene"
)

type iconsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseIconsCmd(args []string, r *root) (*iconsCmd, error) {
	fs := flag.NewFlagSet("icons", flag.ExitOnError)
	cmd := &iconsCmd{root: r.subcommand("icons"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *iconsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *iconsCmd) Run() error {
	out := c.out()
	fmt.Fprintln(out, "component palette (key, category, label, accent):")
	keys := "1234567890"
	for i, ic := range scene.IconCategories {
		shortcut := " "
		if i < len(keys) {
			shortcut = keys[i : i+1]
		}
		fmt.Fprintf(out, "%s  %-14s %-14s %s %s\n", shortcut, ic.Name, ic.Label, ic.Accent.Hex(), swatch(ic.Accent))
	}
	fmt.Fprintf(out, "unknown categories use %s\n", scene.IconFallback.Hex())
	return nil
}

type colorsCmd struct {
	*root
	fs  *flag.FlagSet
	all bool
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.BoolVar(&cmd.all, "all", false, "list every CSS colour name instead of the toolbar swatches")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Run() error {
	out := c.out()
	names := board.Swatches
	if c.all {
		names = make([]string, 0, len(colornames.Map))
		for name := range colornames.Map {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(out, "available colour names:")
	} else {
		fmt.Fprintln(out, "toolbar colours (* marks the configured ink):")
	}
	ink := ""
	if c.config != nil {
		if col, err := c.config.Ink(); err == nil {
			ink = col.Hex()
		}
	}
	for _, name := range names {
		col, err := scene.ParseColor(name)
		if err != nil {
			continue
		}
		marker := " "
		if col.Hex() == ink {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-20s %s %s\n", marker, name, col.Hex(), swatch(col))
	}
	return nil
}

func swatch(c scene.Color) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
}
