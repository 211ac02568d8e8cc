package main

import (
	"flag"
	"fmt"

	"github.com/example/designboard/internal/board"
	"github.com/example/designboard/internal/export"
	"github.com/example/designboard/internal/scene"
	"github.com/example/designboard/internal/tool"
)

type openCmd struct {
	*root
	fs         *flag.FlagSet
	width      int
	height     int
	background string
	color      string
	dir        string
	history    int
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	o := &openCmd{root: r.subcommand("open"), fs: fs}
	cfg := r.config
	fs.IntVar(&o.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&o.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.StringVar(&o.background, "background", cfg.Canvas.Background, "canvas background colour")
	fs.StringVar(&o.color, "color", cfg.Canvas.Color, "initial ink colour")
	fs.StringVar(&o.dir, "dir", cfg.SaveDir, "directory for exported images")
	fs.IntVar(&o.history, "history", 0, "maximum undo entries kept (0 keeps all)")
	fs.Usage = usageFunc(o)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: o}
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d must be positive", o.width, o.height)
	}
	return o, nil
}

func (o *openCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

// controller builds the scene and controller the window edits.
func (o *openCmd) controller() (*tool.Controller, *export.Service, error) {
	bg, err := scene.ParseColor(o.background)
	if err != nil {
		return nil, nil, fmt.Errorf("open: background: %w", err)
	}
	ink, err := scene.ParseColor(o.color)
	if err != nil {
		return nil, nil, fmt.Errorf("open: color: %w", err)
	}
	svc := &export.Service{Dir: o.dir, Notifier: o.notifier}
	ctrl, err := tool.New(scene.New(o.width, o.height, bg),
		tool.WithExporter(svc),
		tool.WithColor(ink),
		tool.WithHistoryLimit(o.history),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	return ctrl, svc, nil
}

func (o *openCmd) Run() error {
	ctrl, svc, err := o.controller()
	if err != nil {
		return err
	}
	board.New(ctrl,
		board.WithTheme(o.activeTheme),
		board.WithCopier(svc.CopyToClipboard),
	).Run()
	return nil
}
