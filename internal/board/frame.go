package board

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/designboard/internal/render"
	"github.com/example/designboard/internal/scene"
)

// Compose paints the whole window into dst.
func (b *Board) Compose(dst *image.RGBA) {
	th := b.theme
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, &image.Uniform{th.Background}, image.Point{}, draw.Src)

	bar := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+toolbarWidth, bounds.Max.Y)
	draw.Draw(dst, bar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, e := range b.entries {
		state := StateDefault
		switch {
		case e.active != nil && e.active():
			state = StateActive
		case i == b.pressed:
			state = StatePressed
		case i == b.hover:
			state = StateHover
		}
		e.Draw(dst, th, state)
	}

	b.drawCanvas(dst)
	b.drawStatus(dst)
	b.drawToast(dst)
}

func (b *Board) drawCanvas(dst *image.RGBA) {
	cr := b.canvasRect()
	drawRect(dst, cr.Inset(-1), b.theme.CanvasFrame)
	sub, ok := dst.SubImage(cr).(*image.RGBA)
	if !ok || sub.Bounds().Empty() {
		return
	}
	px := render.NewPixels(sub, 1, cr.Min)
	sc := b.ctrl.Scene()
	sc.Draw(px)

	sel := scene.Color(b.theme.Selection)
	if h, ok := b.ctrl.Selected(); ok {
		if o, ok := sc.At(h); ok {
			px.Outline(o.Bounds().Inset(4), sel)
		}
	}
	if h, ok := b.ctrl.Editing(); ok {
		if o, ok := sc.At(h); ok {
			r := o.Bounds()
			px.Line(scene.Pt(r.Max.X+2, r.Min.Y), scene.Pt(r.Max.X+2, r.Max.Y), o.Color, 1)
			px.Outline(r.Inset(4), sel)
		}
	}
}

func (b *Board) drawStatus(dst *image.RGBA) {
	bounds := dst.Bounds()
	y := bounds.Max.Y - statusHeight
	if y < bounds.Min.Y {
		return
	}
	h := b.ctrl.History()
	status := fmt.Sprintf("%s  %s  history %d/%d", b.ctrl.Tool(), b.ctrl.Color().Hex(), h.Cursor()+1, h.Len())
	if ev, ok := b.ctrl.Armed(); ok {
		status += "  placing " + ev.Label
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(b.theme.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(bounds.Min.X+toolbarWidth+margin, y+16)}
	d.DrawString(status)
}

func (b *Board) drawToast(dst *image.RGBA) {
	msg, ok := b.Message()
	if !ok {
		return
	}
	w, h, err := render.MeasureText(msg, toastSize)
	if err != nil {
		return
	}
	cr := b.canvasRect()
	px := cr.Min.X + (cr.Dx()-w)/2
	py := cr.Min.Y + (cr.Dy()-h)/2
	box := image.Rect(px-8, py-8, px+w+8, py+h+8)
	draw.Draw(dst, box, &image.Uniform{b.theme.ToastBackground}, image.Point{}, draw.Over)
	drawRect(dst, box, b.theme.ButtonBorder)
	_ = render.DrawText(dst, px, py, msg, color.RGBA(b.theme.ToastText), toastSize)
}
