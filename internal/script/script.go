// Package script replays recorded board sessions written in YAML.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/designboard/internal/export"
	"github.com/example/designboard/internal/scene"
	"github.com/example/designboard/internal/tool"
)

// Point is written as a two element sequence: [x, y].
type Point [2]float64

func (p Point) scene() scene.Point { return scene.Pt(p[0], p[1]) }

// Canvas sets up the board before any step runs.
type Canvas struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// Drop places an icon from the component palette.
type Drop struct {
	Category string `yaml:"category"`
	Label    string `yaml:"label"`
	At       Point  `yaml:"at"`
}

// TextStep places a text object and types its content.
type TextStep struct {
	At      Point  `yaml:"at"`
	Content string `yaml:"content"`
}

// Step is one action. Exactly one field must be set.
type Step struct {
	Tool   string    `yaml:"tool,omitempty"`
	Color  string    `yaml:"color,omitempty"`
	Drag   []Point   `yaml:"drag,omitempty"`
	Click  *Point    `yaml:"click,omitempty"`
	Drop   *Drop     `yaml:"drop,omitempty"`
	Text   *TextStep `yaml:"text,omitempty"`
	Undo   int       `yaml:"undo,omitempty"`
	Redo   int       `yaml:"redo,omitempty"`
	Clear  bool      `yaml:"clear,omitempty"`
	Delete bool      `yaml:"delete,omitempty"`
	Export bool      `yaml:"export,omitempty"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Tool != "", s.Color != "", len(s.Drag) > 0, s.Click != nil, s.Drop != nil,
		s.Text != nil, s.Undo > 0, s.Redo > 0, s.Clear, s.Delete, s.Export,
	} {
		if set {
			n++
		}
	}
	return n
}

// Script is a parsed session.
type Script struct {
	Canvas Canvas `yaml:"canvas"`
	Steps  []Step `yaml:"steps"`
}

// Load decodes and validates a script.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty script")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a script from path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every step names exactly one action.
func (s *Script) Validate() error {
	if s.Canvas.Width < 0 || s.Canvas.Height < 0 {
		return fmt.Errorf("canvas size %dx%d is negative", s.Canvas.Width, s.Canvas.Height)
	}
	if s.Canvas.Background != "" {
		if _, err := scene.ParseColor(s.Canvas.Background); err != nil {
			return fmt.Errorf("canvas background: %w", err)
		}
	}
	for i, st := range s.Steps {
		switch n := st.actions(); {
		case n == 0:
			return fmt.Errorf("step %d: no action", i+1)
		case n > 1:
			return fmt.Errorf("step %d: %d actions, want one", i+1, n)
		}
		if len(st.Drag) == 1 {
			return fmt.Errorf("step %d: drag needs at least two points", i+1)
		}
	}
	return nil
}

// NewScene builds the empty board described by the canvas block, falling
// back to the given defaults.
func (s *Script) NewScene(width, height int, background scene.Color) (*scene.Scene, error) {
	if s.Canvas.Width > 0 {
		width = s.Canvas.Width
	}
	if s.Canvas.Height > 0 {
		height = s.Canvas.Height
	}
	if s.Canvas.Background != "" {
		bg, err := scene.ParseColor(s.Canvas.Background)
		if err != nil {
			return nil, err
		}
		background = bg
	}
	return scene.New(width, height, background), nil
}

// Report summarises a replay.
type Report struct {
	Steps   int
	Objects int
	History int
	Cursor  int
	Exports []export.Result
}

// Run applies every step to c in order.
func (s *Script) Run(ctx context.Context, c *tool.Controller) (Report, error) {
	var rep Report
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := apply(ctx, c, st, &rep); err != nil {
			return rep, fmt.Errorf("step %d: %w", i+1, err)
		}
		rep.Steps++
	}
	if err := c.FinishText(); err != nil {
		return rep, err
	}
	rep.Objects = c.Scene().Len()
	rep.History = c.History().Len()
	rep.Cursor = c.History().Cursor()
	return rep, nil
}

func apply(ctx context.Context, c *tool.Controller, st Step, rep *Report) error {
	switch {
	case st.Tool != "":
		t, err := tool.ParseTool(st.Tool)
		if err != nil {
			return err
		}
		return c.SelectTool(t)
	case st.Color != "":
		return c.SetColor(st.Color)
	case len(st.Drag) > 0:
		if err := c.PointerDown(st.Drag[0].scene()); err != nil {
			return err
		}
		last := st.Drag[len(st.Drag)-1]
		for _, p := range st.Drag[1 : len(st.Drag)-1] {
			c.PointerMove(p.scene())
		}
		c.PointerMove(last.scene())
		return c.PointerUp(last.scene())
	case st.Click != nil:
		if err := c.PointerDown(st.Click.scene()); err != nil {
			return err
		}
		return c.PointerUp(st.Click.scene())
	case st.Drop != nil:
		_, err := c.Drop(tool.DropEvent{Category: st.Drop.Category, Label: st.Drop.Label, At: st.Drop.At.scene()})
		return err
	case st.Text != nil:
		if err := c.SelectTool(tool.Text); err != nil {
			return err
		}
		if err := c.PointerDown(st.Text.At.scene()); err != nil {
			return err
		}
		for _, r := range st.Text.Content {
			c.TypeRune(r)
		}
		return c.FinishText()
	case st.Undo > 0:
		for range st.Undo {
			if _, err := c.Undo(); err != nil {
				return err
			}
		}
	case st.Redo > 0:
		for range st.Redo {
			if _, err := c.Redo(); err != nil {
				return err
			}
		}
	case st.Clear:
		return c.Clear()
	case st.Delete:
		_, err := c.DeleteSelected()
		return err
	case st.Export:
		res, err := c.Export(ctx)
		if err != nil {
			return err
		}
		rep.Exports = append(rep.Exports, res)
	}
	return nil
}
