// Package tool turns pointer gestures and toolbar intents into scene edits
// and history commits.
package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/designboard/internal/export"
	"github.com/example/designboard/internal/history"
	"github.com/example/designboard/internal/scene"
)

// ErrNoExporter is returned by Export when no exporter was configured.
var ErrNoExporter = errors.New("no exporter configured")

// Exporter produces an image of the scene. It must not modify it.
type Exporter interface {
	Export(ctx context.Context, s *scene.Scene) (export.Result, error)
}

// DropEvent is an icon dragged in from the component palette.
type DropEvent struct {
	Category string
	Label    string
	At       scene.Point
}

// Controller is the single owner of a scene and its history.
type Controller struct {
	scene   *scene.Scene
	history *history.Manager

	tool  Tool
	color scene.Color

	provisional scene.Handle

	selected scene.Handle
	dragging bool
	dragFrom scene.Point
	moved    bool

	editing   scene.Handle
	editStart string
	pristine  bool

	armed *DropEvent

	exporter     Exporter
	historyLimit int
	onChange     func()
}

// Option configures a Controller.
type Option func(*Controller)

func WithExporter(e Exporter) Option { return func(c *Controller) { c.exporter = e } }

func WithColor(col scene.Color) Option { return func(c *Controller) { c.color = col } }

func WithHistoryLimit(n int) Option { return func(c *Controller) { c.historyLimit = n } }

// WithOnChange registers fn to be called after every visible change.
func WithOnChange(fn func()) Option { return func(c *Controller) { c.onChange = fn } }

// New takes ownership of s and records its current state as the first
// history entry. The initial tool is Select.
func New(s *scene.Scene, opts ...Option) (*Controller, error) {
	c := &Controller{
		scene:       s,
		color:       scene.DefaultInk,
		provisional: scene.NoHandle,
		selected:    scene.NoHandle,
		editing:     scene.NoHandle,
	}
	for _, opt := range opts {
		opt(c)
	}
	h, err := history.New(s, history.WithLimit(c.historyLimit))
	if err != nil {
		return nil, err
	}
	c.history = h
	c.applyInteractivity()
	return c, nil
}

func (c *Controller) Scene() *scene.Scene        { return c.scene }
func (c *Controller) History() *history.Manager  { return c.history }
func (c *Controller) Tool() Tool                 { return c.tool }
func (c *Controller) Color() scene.Color         { return c.color }
func (c *Controller) CanUndo() bool              { return c.history.CanUndo() }
func (c *Controller) CanRedo() bool              { return c.history.CanRedo() }
func (c *Controller) SetExporter(e Exporter)     { c.exporter = e }
func (c *Controller) Armed() (DropEvent, bool) {
	if c.armed == nil {
		return DropEvent{}, false
	}
	return *c.armed, true
}

// Selected returns the selected object, if any.
func (c *Controller) Selected() (scene.Handle, bool) {
	return c.selected, c.selected != scene.NoHandle
}

// Provisional returns the object being sized by the current gesture.
func (c *Controller) Provisional() (scene.Handle, bool) {
	return c.provisional, c.provisional != scene.NoHandle
}

// Editing returns the text object receiving keystrokes.
func (c *Controller) Editing() (scene.Handle, bool) {
	return c.editing, c.editing != scene.NoHandle
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) commit() error {
	c.applyInteractivity()
	return c.history.Commit()
}

// applyInteractivity makes objects selectable only under the Select tool.
func (c *Controller) applyInteractivity() {
	c.scene.SetSelectable(c.tool == Select)
}

func (c *Controller) resetGesture() {
	c.provisional = scene.NoHandle
	c.selected = scene.NoHandle
	c.dragging = false
	c.moved = false
	c.editing = scene.NoHandle
	c.pristine = false
}

// SelectTool switches tools. Any text edit in progress is finished first.
func (c *Controller) SelectTool(t Tool) error {
	err := c.FinishText()
	c.tool = t
	c.provisional = scene.NoHandle
	c.selected = scene.NoHandle
	c.dragging = false
	if t != IconPlacing {
		c.armed = nil
	}
	c.applyInteractivity()
	c.changed()
	return err
}

// SetColor sets the ink for new objects.
func (c *Controller) SetColor(spec string) error {
	col, err := scene.ParseColor(spec)
	if err != nil {
		return fmt.Errorf("set color: %w", err)
	}
	c.color = col
	c.changed()
	return nil
}

// ArmIcon selects IconPlacing and remembers the icon the next pointer-down
// places.
func (c *Controller) ArmIcon(category, label string) error {
	if err := c.SelectTool(IconPlacing); err != nil {
		return err
	}
	if label == "" {
		if ic, ok := scene.LookupIcon(category); ok {
			label = ic.Label
		}
	}
	c.armed = &DropEvent{Category: category, Label: label}
	return nil
}

// PointerDown starts a gesture at p.
func (c *Controller) PointerDown(p scene.Point) error {
	if _, ok := c.Editing(); ok {
		if err := c.FinishText(); err != nil {
			return err
		}
	}
	// A previous gesture that never saw its pointer-up keeps its object in
	// the scene; it is captured by the next commit.
	c.provisional = scene.NoHandle

	switch c.tool {
	case Select:
		h, ok := c.scene.HitTest(p)
		if !ok {
			if c.selected != scene.NoHandle {
				c.selected = scene.NoHandle
				c.changed()
			}
			return nil
		}
		c.selected = c.rootOf(h)
		c.dragging = true
		c.dragFrom = p
		c.moved = false
		c.changed()
		return nil
	case Draw:
		c.provisional = c.scene.Add(scene.NewStroke(p, c.color, scene.FreehandWidth))
	case Erase:
		c.provisional = c.scene.Add(scene.NewEraserStroke(p, c.scene.Background()))
	case Rectangle:
		c.provisional = c.scene.Add(scene.NewShape(scene.KindRect, p, c.color))
	case Circle:
		c.provisional = c.scene.Add(scene.NewShape(scene.KindEllipse, p, c.color))
	case Line:
		c.provisional = c.scene.Add(scene.NewLine(scene.KindLine, p, c.color))
	case Arrow:
		c.provisional = c.scene.Add(scene.NewLine(scene.KindArrow, p, c.color))
	case Text:
		h := c.scene.Add(scene.NewText(p, c.color))
		if err := c.commit(); err != nil {
			return err
		}
		c.editing = h
		c.editStart = scene.TextPlaceholder
		c.pristine = true
	case IconPlacing:
		if c.armed == nil {
			return nil
		}
		ev := *c.armed
		ev.At = p
		_, err := c.Drop(ev)
		return err
	}
	c.applyInteractivity()
	c.changed()
	return nil
}

// rootOf maps an arrowhead to the arrow that owns it.
func (c *Controller) rootOf(h scene.Handle) scene.Handle {
	o, ok := c.scene.At(h)
	if !ok || o.Parent == "" {
		return h
	}
	if parent, ok := c.scene.Find(o.Parent); ok {
		return parent
	}
	return h
}

// PointerMove updates the object owned by the current gesture. Without one
// it does nothing.
func (c *Controller) PointerMove(p scene.Point) {
	if c.dragging {
		c.dragSelection(p)
		return
	}
	o, ok := c.scene.At(c.provisional)
	if !ok {
		return
	}
	update(o, p)
	c.changed()
}

func update(o *scene.Object, p scene.Point) {
	switch o.Kind {
	case scene.KindStroke:
		o.Extend(p)
	case scene.KindRect, scene.KindEllipse:
		o.Resize(p)
	case scene.KindLine, scene.KindArrow:
		o.End = p
	}
}

func (c *Controller) dragSelection(p scene.Point) {
	o, ok := c.scene.At(c.selected)
	if !ok {
		c.dragging = false
		return
	}
	d := p.Sub(c.dragFrom)
	if d == (scene.Point{}) {
		return
	}
	o.Translate(d)
	id := o.ID
	for h, child := range c.scene.All() {
		if child.Parent == id {
			co, _ := c.scene.At(h)
			co.Translate(d)
		}
	}
	c.dragFrom = p
	c.moved = true
	c.changed()
}

// PointerUp ends the gesture and commits it. Arrows get their heads here.
func (c *Controller) PointerUp(p scene.Point) error {
	if c.dragging {
		c.dragSelection(p)
		c.dragging = false
		if !c.moved {
			return nil
		}
		c.moved = false
		return c.commit()
	}
	h := c.provisional
	o, ok := c.scene.At(h)
	if !ok {
		return nil
	}
	update(o, p)
	c.provisional = scene.NoHandle
	if o.Kind == scene.KindArrow {
		c.addArrowHead(*o)
	}
	err := c.commit()
	c.changed()
	return err
}

func (c *Controller) addArrowHead(arrow scene.Object) {
	left, right, ok := scene.ArrowHead(arrow.Start, arrow.End, scene.ArrowHeadLength)
	if !ok {
		return
	}
	for _, seg := range [][2]scene.Point{left, right} {
		head := scene.NewLine(scene.KindLine, seg[0], arrow.Color)
		head.End = seg[1]
		head.Width = arrow.Width
		head.Parent = arrow.ID
		c.scene.Add(head)
	}
}

// Drop places an icon. Events without a category or label are ignored.
func (c *Controller) Drop(ev DropEvent) (bool, error) {
	category := strings.TrimSpace(ev.Category)
	label := strings.TrimSpace(ev.Label)
	if category == "" || label == "" {
		return false, nil
	}
	if err := c.FinishText(); err != nil {
		return false, err
	}
	c.scene.Add(scene.NewIcon(ev.At, category, label))
	err := c.commit()
	c.changed()
	return err == nil, err
}

// TypeRune appends r to the text being edited. The first rune replaces the
// placeholder.
func (c *Controller) TypeRune(r rune) {
	o, ok := c.scene.At(c.editing)
	if !ok {
		return
	}
	if c.pristine {
		o.Text = ""
		c.pristine = false
	}
	o.Text += string(r)
	c.changed()
}

// Backspace removes the last rune of the text being edited.
func (c *Controller) Backspace() {
	o, ok := c.scene.At(c.editing)
	if !ok {
		return
	}
	if c.pristine {
		o.Text = ""
		c.pristine = false
	} else if rs := []rune(o.Text); len(rs) > 0 {
		o.Text = string(rs[:len(rs)-1])
	}
	c.changed()
}

// FinishText leaves edit mode, committing when the content changed.
func (c *Controller) FinishText() error {
	o, ok := c.scene.At(c.editing)
	c.editing = scene.NoHandle
	c.pristine = false
	if !ok || o.Text == c.editStart {
		return nil
	}
	err := c.commit()
	c.changed()
	return err
}

// DeleteSelected removes the selected object and commits.
func (c *Controller) DeleteSelected() (bool, error) {
	h, ok := c.Selected()
	if !ok {
		return false, nil
	}
	if !c.scene.Remove(h) {
		return false, nil
	}
	c.resetGesture()
	err := c.commit()
	c.changed()
	return err == nil, err
}

// Undo restores the previous history entry.
func (c *Controller) Undo() (bool, error) {
	return c.step(c.history.Undo)
}

// Redo restores the next history entry.
func (c *Controller) Redo() (bool, error) {
	return c.step(c.history.Redo)
}

func (c *Controller) step(fn func() (bool, error)) (bool, error) {
	if err := c.FinishText(); err != nil {
		return false, err
	}
	ok, err := fn()
	if !ok || err != nil {
		return ok, err
	}
	c.resetGesture()
	c.applyInteractivity()
	c.changed()
	return true, nil
}

// Clear empties the scene and commits, even when it is already empty.
func (c *Controller) Clear() error {
	c.resetGesture()
	c.scene.RemoveAll()
	err := c.commit()
	c.changed()
	return err
}

// Export hands the scene to the configured exporter.
func (c *Controller) Export(ctx context.Context) (export.Result, error) {
	if c.exporter == nil {
		return export.Result{}, ErrNoExporter
	}
	return c.exporter.Export(ctx, c.scene)
}
