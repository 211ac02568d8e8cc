package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/example/designboard/internal/export"
	"github.com/example/designboard/internal/script"
	"github.com/example/designboard/internal/tool"
)

type replayCmd struct {
	*root
	fs      *flag.FlagSet
	script  string
	dir     string
	pdf     string
	copy    bool
	history int
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r.subcommand("replay"), fs: fs}
	fs.StringVar(&c.script, "script", "", "YAML board script to replay")
	fs.StringVar(&c.dir, "dir", r.config.SaveDir, "directory for exported images")
	fs.StringVar(&c.pdf, "pdf", "", "also write the final board as a PDF to this file")
	fs.BoolVar(&c.copy, "copy", false, "copy each export to the clipboard")
	fs.IntVar(&c.history, "history", 0, "maximum undo entries kept (0 keeps all)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.script == "" && fs.NArg() == 1 {
		c.script = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.script == "" {
		return nil, errors.New("replay: -script is required")
	}
	return c, nil
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.run(ctx)
}

func (c *replayCmd) run(ctx context.Context) error {
	sc, err := script.LoadFile(c.script)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	cfg := c.config
	bg, err := cfg.Background()
	if err != nil {
		return fmt.Errorf("replay: background: %w", err)
	}
	ink, err := cfg.Ink()
	if err != nil {
		return fmt.Errorf("replay: color: %w", err)
	}
	canvas, err := sc.NewScene(cfg.Canvas.Width, cfg.Canvas.Height, bg)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	svc := &export.Service{Dir: c.dir, Copy: c.copy, Notifier: c.notifier}
	ctrl, err := tool.New(canvas,
		tool.WithExporter(svc),
		tool.WithColor(ink),
		tool.WithHistoryLimit(c.history),
	)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	rep, err := sc.Run(ctx, ctrl)
	if err != nil {
		return fmt.Errorf("replay %s: %w", c.script, err)
	}

	out := c.out()
	fmt.Fprintf(out, "steps: %d\nobjects: %d\nhistory: %d (cursor %d)\n", rep.Steps, rep.Objects, rep.History, rep.Cursor)
	for _, res := range rep.Exports {
		copied := ""
		if res.Copied {
			copied = " (copied)"
		}
		fmt.Fprintf(out, "exported %s %dx%d%s\n", res.Path, res.Width, res.Height, copied)
	}
	if c.pdf != "" {
		if err := writePDF(c.pdf, ctrl); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", c.pdf)
	}
	return nil
}

func writePDF(path string, ctrl *tool.Controller) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}
	if err := export.PDF(f, ctrl.Scene()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("replay: pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("replay: close %s: %w", path, err)
	}
	return nil
}
