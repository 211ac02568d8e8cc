// Package render draws scenes onto raster targets.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/designboard/internal/scene"
)

// Pixels is an aliased scene.Surface over an RGBA buffer. It is fast enough
// to redraw the whole board on every pointer event.
type Pixels struct {
	Dst    *image.RGBA
	Scale  float64
	Offset image.Point
}

var _ scene.Surface = (*Pixels)(nil)

// NewPixels draws into dst with canvas origin at offset.
func NewPixels(dst *image.RGBA, scale float64, offset image.Point) *Pixels {
	if scale <= 0 {
		scale = 1
	}
	return &Pixels{Dst: dst, Scale: scale, Offset: offset}
}

// Rasterize renders s into a new image of size (w*scale, h*scale).
func Rasterize(s *scene.Scene, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(float64(s.Width()) * scale))
	h := int(math.Round(float64(s.Height()) * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s.Draw(NewPixels(img, scale, image.Point{}))
	return img
}

func (p *Pixels) pt(q scene.Point) (int, int) {
	return p.Offset.X + int(math.Round(q.X*p.Scale)), p.Offset.Y + int(math.Round(q.Y*p.Scale))
}

func (p *Pixels) thick(width float64) int {
	t := int(math.Round(width * p.Scale))
	if t < 1 {
		t = 1
	}
	return t
}

// canvas is the area of Dst covered by the board.
func (p *Pixels) canvas(w, h int) image.Rectangle {
	return image.Rect(0, 0, int(math.Round(float64(w)*p.Scale)), int(math.Round(float64(h)*p.Scale))).Add(p.Offset)
}

func (p *Pixels) Clear(bg scene.Color) {
	draw.Draw(p.Dst, p.Dst.Bounds(), image.NewUniform(color.RGBA(bg)), image.Point{}, draw.Src)
}

// ClearCanvas fills only the w×h board area, leaving surrounding chrome.
func (p *Pixels) ClearCanvas(w, h int, bg scene.Color) {
	draw.Draw(p.Dst, p.canvas(w, h).Intersect(p.Dst.Bounds()), image.NewUniform(color.RGBA(bg)), image.Point{}, draw.Src)
}

func (p *Pixels) Polyline(pts []scene.Point, c scene.Color, width float64) {
	if len(pts) == 0 {
		return
	}
	t := p.thick(width)
	x0, y0 := p.pt(pts[0])
	if len(pts) == 1 {
		drawDot(p.Dst, x0, y0, t/2, c)
		return
	}
	for _, q := range pts[1:] {
		x1, y1 := p.pt(q)
		drawLine(p.Dst, x0, y0, x1, y1, c, t)
		x0, y0 = x1, y1
	}
}

func (p *Pixels) Line(a, b scene.Point, c scene.Color, width float64) {
	x0, y0 := p.pt(a)
	x1, y1 := p.pt(b)
	drawLine(p.Dst, x0, y0, x1, y1, c, p.thick(width))
}

func (p *Pixels) StrokeRect(min scene.Point, w, h float64, c scene.Color, width float64) {
	x0, y0 := p.pt(min)
	x1, y1 := p.pt(scene.Point{X: min.X + w, Y: min.Y + h})
	t := p.thick(width)
	drawLine(p.Dst, x0, y0, x1, y0, c, t)
	drawLine(p.Dst, x1, y0, x1, y1, c, t)
	drawLine(p.Dst, x1, y1, x0, y1, c, t)
	drawLine(p.Dst, x0, y1, x0, y0, c, t)
}

func (p *Pixels) StrokeEllipse(min scene.Point, w, h float64, c scene.Color, width float64) {
	cx, cy := p.pt(scene.Point{X: min.X + w/2, Y: min.Y + h/2})
	rx := int(math.Round(w / 2 * p.Scale))
	ry := int(math.Round(h / 2 * p.Scale))
	drawEllipse(p.Dst, cx, cy, rx, ry, c, p.thick(width))
}

func (p *Pixels) FillRect(min scene.Point, w, h float64, c scene.Color) {
	x0, y0 := p.pt(min)
	x1, y1 := p.pt(scene.Point{X: min.X + w, Y: min.Y + h})
	r := image.Rect(x0, y0, x1, y1).Intersect(p.Dst.Bounds())
	draw.Draw(p.Dst, r, image.NewUniform(color.RGBA(c)), image.Point{}, draw.Over)
}

func (p *Pixels) Text(at scene.Point, s string, size float64, c scene.Color) {
	if s == "" {
		return
	}
	x, y := p.pt(at)
	_ = DrawText(p.Dst, x, y, s, color.RGBA(c), size*p.Scale)
}

// Outline draws a dashed selection frame around r.
func (p *Pixels) Outline(r scene.Rect, c scene.Color) {
	x0, y0 := p.pt(r.Min)
	x1, y1 := p.pt(r.Max)
	drawDashedRect(p.Dst, image.Rect(x0, y0, x1, y1), c, 1, 4)
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if pt := image.Pt(x+dx, y+dy); pt.In(img.Bounds()) {
				img.Set(pt.X, pt.Y, col)
			}
		}
	}
}

// drawLine is Bresenham with a square brush.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawEllipse(img *image.RGBA, cx, cy, rx, ry int, col color.Color, thick int) {
	if rx == 0 && ry == 0 {
		setThickPixel(img, cx, cy, thick, col)
		return
	}
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var px, py int
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(math.Cos(a)*float64(rx)))
		y := cy + int(math.Round(math.Sin(a)*float64(ry)))
		if i > 0 {
			drawLine(img, px, py, x, y, col, thick)
		}
		px, py = x, y
	}
}

func drawDot(img *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r && image.Pt(cx+dx, cy+dy).In(img.Bounds()) {
				img.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

func drawDashedRect(img *image.RGBA, r image.Rectangle, col color.Color, thick, dash int) {
	on := func(i int) bool { return (i/dash)%2 == 0 }
	for x := r.Min.X; x <= r.Max.X; x++ {
		if on(x - r.Min.X) {
			setThickPixel(img, x, r.Min.Y, thick, col)
			setThickPixel(img, x, r.Max.Y, thick, col)
		}
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		if on(y - r.Min.Y) {
			setThickPixel(img, r.Min.X, y, thick, col)
			setThickPixel(img, r.Max.X, y, thick, col)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
