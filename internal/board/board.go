// Package board is the interactive window around a tool.Controller.
package board

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/designboard/internal/scene"
	"github.com/example/designboard/internal/theme"
	"github.com/example/designboard/internal/tool"
)

const (
	toolbarWidth  = 112
	buttonHeight  = 22
	buttonGap     = 2
	swatchSize    = 22
	statusHeight  = 24
	margin        = 8
	toastDuration = 2 * time.Second
	toastSize     = 20
)

// Swatches are the toolbar colours, by CSS name.
var Swatches = []string{"black", "red", "blue", "green", "orange", "purple", "gray", "white"}

type entry struct {
	Button
	active func() bool
}

// Board holds the window state that lives outside the scene.
type Board struct {
	ctrl  *tool.Controller
	theme *theme.Theme
	copy  func(*scene.Scene) error
	now   func() time.Time

	entries []entry
	keys    map[KeyShortcut]string
	actions map[string]func() error

	width, height int
	hover         int
	pressed       int
	drawing       bool
	message       string
	messageUntil  time.Time
	quit          bool

	// wake asks the event loop for a repaint from another goroutine.
	wake func()
}

// Option modifies a Board during creation.
type Option func(*Board)

// WithTheme sets the chrome colours.
func WithTheme(th *theme.Theme) Option { return func(b *Board) { b.theme = th } }

// WithCopier sets the Ctrl+C handler.
func WithCopier(fn func(*scene.Scene) error) Option { return func(b *Board) { b.copy = fn } }

// WithClock replaces time.Now for toast expiry.
func WithClock(now func() time.Time) Option { return func(b *Board) { b.now = now } }

// New builds a board for ctrl.
func New(ctrl *tool.Controller, opts ...Option) *Board {
	b := &Board{
		ctrl:    ctrl,
		theme:   theme.Default(),
		now:     time.Now,
		keys:    make(map[KeyShortcut]string),
		actions: make(map[string]func() error),
		hover:   -1,
		pressed: -1,
	}
	for _, o := range opts {
		o(b)
	}
	if b.theme == nil {
		b.theme = theme.Default()
	}
	sc := ctrl.Scene()
	b.width = toolbarWidth + sc.Width() + 2*margin
	b.height = sc.Height() + 2*margin + statusHeight
	b.registerActions()
	b.registerKeys()
	b.layout()
	return b
}

// Size is the preferred window size.
func (b *Board) Size() image.Point { return image.Pt(b.width, b.height) }

// Quit reports whether the user asked to close the window.
func (b *Board) Quit() bool { return b.quit }

// Message returns the toast currently shown, if any.
func (b *Board) Message() (string, bool) {
	if b.message == "" || !b.now().Before(b.messageUntil) {
		return "", false
	}
	return b.message, true
}

func (b *Board) registerActions() {
	for _, t := range tool.Tools() {
		b.actions["tool:"+t.String()] = func() error { return b.ctrl.SelectTool(t) }
	}
	for _, ic := range scene.IconCategories {
		b.actions["icon:"+ic.Name] = func() error {
			if err := b.ctrl.ArmIcon(ic.Name, ""); err != nil {
				return err
			}
			b.toast("Click to place " + ic.Label)
			return nil
		}
	}
	for _, name := range Swatches {
		b.actions["color:"+name] = func() error { return b.ctrl.SetColor(name) }
	}
	b.actions["undo"] = func() error { _, err := b.ctrl.Undo(); return err }
	b.actions["redo"] = func() error { _, err := b.ctrl.Redo(); return err }
	b.actions["clear"] = b.ctrl.Clear
	b.actions["delete"] = func() error { _, err := b.ctrl.DeleteSelected(); return err }
	b.actions["export"] = func() error {
		res, err := b.ctrl.Export(context.Background())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		b.toast("Saved " + filepath.Base(res.Path))
		return nil
	}
	b.actions["copy"] = func() error {
		if b.copy == nil {
			return fmt.Errorf("clipboard not available")
		}
		if err := b.copy(b.ctrl.Scene()); err != nil {
			return err
		}
		b.toast("Copied to clipboard")
		return nil
	}
	b.actions["quit"] = func() error { b.quit = true; return nil }
}

// Trigger runs a named action, reporting failures as a toast.
func (b *Board) Trigger(action string) {
	fn, ok := b.actions[action]
	if !ok {
		return
	}
	if err := fn(); err != nil {
		log.Printf("%s: %v", action, err)
		b.toast(err.Error())
	}
}

func (b *Board) toast(msg string) {
	b.message = msg
	b.messageUntil = b.now().Add(toastDuration)
	if b.wake != nil {
		wake := b.wake
		time.AfterFunc(toastDuration, wake)
	}
}

// layout places the toolbar buttons down the left edge.
func (b *Board) layout() {
	b.entries = b.entries[:0]
	y := margin
	x0, x1 := 4, toolbarWidth-4
	add := func(label, action string, active func() bool) {
		btn := &ActionButton{label: label, action: action, rect: image.Rect(x0, y, x1, y+buttonHeight)}
		btn.onActivate = func() { b.Trigger(action) }
		b.entries = append(b.entries, entry{Button: btn, active: active})
		y += buttonHeight + buttonGap
	}
	for _, t := range tool.Tools() {
		label := fmt.Sprintf("%c:%s", unicode.ToUpper(toolKeys[t]), titleCase(t.String()))
		add(label, "tool:"+t.String(), func() bool { return b.ctrl.Tool() == t })
	}
	y += margin
	perRow := (x1 - x0) / (swatchSize + buttonGap)
	for i, name := range Swatches {
		col, err := scene.ParseColor(name)
		if err != nil {
			continue
		}
		cx := x0 + (i%perRow)*(swatchSize+buttonGap)
		cy := y + (i/perRow)*(swatchSize+buttonGap)
		sw := &Swatch{name: name, color: color.RGBA(col), rect: image.Rect(cx, cy, cx+swatchSize, cy+swatchSize)}
		sw.onActivate = func() { b.Trigger("color:" + name) }
		b.entries = append(b.entries, entry{Button: sw, active: func() bool { return b.ctrl.Color() == col }})
	}
	rows := (len(Swatches) + perRow - 1) / perRow
	y += rows*(swatchSize+buttonGap) + margin
	add("^Z:Undo", "undo", nil)
	add("^Y:Redo", "redo", nil)
	add("Clear", "clear", nil)
	add("^S:Export", "export", nil)
	add("^C:Copy", "copy", nil)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// canvasRect is where the scene sits in window coordinates.
func (b *Board) canvasRect() image.Rectangle {
	sc := b.ctrl.Scene()
	min := image.Pt(toolbarWidth+margin, margin)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(sc.Width(), sc.Height()))}
}

func (b *Board) toCanvas(x, y float32) scene.Point {
	o := b.canvasRect().Min
	return scene.Pt(float64(x)-float64(o.X), float64(y)-float64(o.Y))
}

func (b *Board) buttonAt(p image.Point) int {
	for i, e := range b.entries {
		if p.In(e.Rect()) {
			return i
		}
	}
	return -1
}

// HandleMouse applies a mouse event and reports whether a repaint is needed.
func (b *Board) HandleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	repaint := false
	if _, ok := b.Message(); ok && e.Direction == mouse.DirPress {
		b.messageUntil = time.Time{}
		repaint = true
	}
	if b.drawing {
		pt := b.toCanvas(e.X, e.Y)
		switch e.Direction {
		case mouse.DirNone:
			b.ctrl.PointerMove(pt)
			return true
		case mouse.DirRelease:
			if e.Button != mouse.ButtonLeft {
				return false
			}
			b.drawing = false
			if err := b.ctrl.PointerUp(pt); err != nil {
				log.Printf("pointer up: %v", err)
				b.toast(err.Error())
			}
			return true
		}
		return false
	}

	if p.X < toolbarWidth {
		idx := b.buttonAt(p)
		switch {
		case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
			b.pressed = idx
		case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
			if idx >= 0 && idx == b.pressed {
				b.entries[idx].Activate()
			}
			b.pressed = -1
		}
		changed := idx != b.hover
		b.hover = idx
		return changed || repaint || e.Direction != mouse.DirNone
	}
	if b.hover != -1 {
		b.hover = -1
		b.pressed = -1
		repaint = true
	}

	if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && p.In(b.canvasRect()) {
		b.drawing = true
		if err := b.ctrl.PointerDown(b.toCanvas(e.X, e.Y)); err != nil {
			log.Printf("pointer down: %v", err)
			b.toast(err.Error())
		}
		return true
	}
	return repaint
}

// HandleKey applies a key press and reports whether a repaint is needed.
func (b *Board) HandleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if _, ok := b.ctrl.Editing(); ok {
		switch e.Code {
		case key.CodeReturnEnter, key.CodeEscape:
			if err := b.ctrl.FinishText(); err != nil {
				b.toast(err.Error())
			}
			return true
		case key.CodeDeleteBackspace:
			b.ctrl.Backspace()
			return true
		}
		if e.Modifiers&key.ModControl == 0 && e.Rune > 0 && unicode.IsPrint(e.Rune) {
			b.ctrl.TypeRune(e.Rune)
			return true
		}
	}
	action, ok := b.lookupKey(e)
	if !ok {
		return false
	}
	b.Trigger(action)
	return true
}

// Run opens the window and blocks until it closes.
func (b *Board) Run() { driver.Main(b.Main) }

// Main is the shiny entry point.
func (b *Board) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: b.width, Height: b.height, Title: "Designboard"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	b.wake = func() { w.Send(paint.Event{}) }

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			b.width = e.WidthPx
			b.height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			b.publish(s, w)
		case mouse.Event:
			if b.HandleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if b.HandleKey(e) {
				w.Send(paint.Event{})
			}
			if b.quit {
				return
			}
		case error:
			log.Print(e)
		}
	}
}

func (b *Board) publish(s screen.Screen, w screen.Window) {
	buf, err := s.NewBuffer(image.Point{b.width, b.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	b.Compose(buf.RGBA())
	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}
