package board

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/designboard/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateActive
)

// Button represents an interactive toolbar element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, th *theme.Theme, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// ActionButton is a labelled toolbar button.
type ActionButton struct {
	label  string
	action string
	rect   image.Rectangle
	// onActivate is called when the button is clicked.
	onActivate func()
}

var _ Button = (*ActionButton)(nil)

func (b *ActionButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	bg := th.ButtonBackground
	fg := th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	case StateActive:
		bg = th.ButtonActive
		fg = th.ButtonBackground
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+4, b.rect.Min.Y+16)}
	d.DrawString(b.label)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// Swatch is a colour button.
type Swatch struct {
	name  string
	color color.RGBA
	rect  image.Rectangle
	// onActivate is called when the swatch is clicked.
	onActivate func()
}

var _ Button = (*Swatch)(nil)

func (s *Swatch) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{s.color}, image.Point{}, draw.Src)
	border := th.ButtonBorder
	switch state {
	case StateHover, StatePressed:
		border = th.ButtonBackgroundHover
	case StateActive:
		border = th.ButtonActive
		drawRect(dst, s.rect.Inset(1), border)
	}
	drawRect(dst, s.rect, border)
}

func (s *Swatch) Rect() image.Rectangle { return s.rect }

func (s *Swatch) SetRect(r image.Rectangle) { s.rect = r }

func (s *Swatch) Activate() {
	if s.onActivate != nil {
		s.onActivate()
	}
}

func drawRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
