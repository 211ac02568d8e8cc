package render

import (
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/example/designboard/internal/scene"
)

var (
	sourceOnce sync.Once
	sourceErr  error
	source     *text.FontSource
)

func fontSource() (*text.FontSource, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewFontSource(goregular.TTF)
	})
	return source, sourceErr
}

// Vector is an anti-aliased scene.Surface backed by a gg context. Text is
// positioned in device pixels because gg draws strings without applying the
// current transform, so every coordinate is scaled here rather than through
// the context matrix.
type Vector struct {
	dc    *gg.Context
	scale float64
	err   error
}

var _ scene.Surface = (*Vector)(nil)

// NewVector creates a surface for a w×h board rendered at scale.
func NewVector(w, h int, scale float64) *Vector {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(math.Round(float64(w)*scale)), int(math.Round(float64(h)*scale)))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &Vector{dc: dc, scale: scale}
}

// RasterizeVector renders s with anti-aliasing at scale.
func RasterizeVector(s *scene.Scene, scale float64) (image.Image, error) {
	v := NewVector(s.Width(), s.Height(), scale)
	defer v.Close()
	s.Draw(v)
	if v.err != nil {
		return nil, v.err
	}
	return v.dc.Image(), nil
}

// Err returns the first drawing error encountered.
func (v *Vector) Err() error { return v.err }

func (v *Vector) Image() image.Image { return v.dc.Image() }

func (v *Vector) EncodePNG(w io.Writer) error {
	if v.err != nil {
		return v.err
	}
	return v.dc.EncodePNG(w)
}

func (v *Vector) Close() error { return v.dc.Close() }

func (v *Vector) fail(op string, err error) {
	if err != nil && v.err == nil {
		v.err = fmt.Errorf("%s: %w", op, err)
	}
}

func (v *Vector) stroke(c scene.Color, width float64) {
	v.dc.SetColor(c)
	v.dc.SetLineWidth(math.Max(width*v.scale, 1))
	v.fail("stroke", v.dc.Stroke())
}

func (v *Vector) Clear(bg scene.Color) {
	v.dc.ClearWithColor(gg.FromColor(bg))
}

func (v *Vector) Polyline(pts []scene.Point, c scene.Color, width float64) {
	switch len(pts) {
	case 0:
		return
	case 1:
		v.dc.DrawCircle(pts[0].X*v.scale, pts[0].Y*v.scale, math.Max(width*v.scale/2, 0.5))
		v.dc.SetColor(c)
		v.fail("dot", v.dc.Fill())
		return
	}
	v.dc.MoveTo(pts[0].X*v.scale, pts[0].Y*v.scale)
	for _, p := range pts[1:] {
		v.dc.LineTo(p.X*v.scale, p.Y*v.scale)
	}
	v.stroke(c, width)
}

func (v *Vector) Line(a, b scene.Point, c scene.Color, width float64) {
	v.dc.DrawLine(a.X*v.scale, a.Y*v.scale, b.X*v.scale, b.Y*v.scale)
	v.stroke(c, width)
}

func (v *Vector) StrokeRect(min scene.Point, w, h float64, c scene.Color, width float64) {
	v.dc.DrawRectangle(min.X*v.scale, min.Y*v.scale, w*v.scale, h*v.scale)
	v.stroke(c, width)
}

func (v *Vector) StrokeEllipse(min scene.Point, w, h float64, c scene.Color, width float64) {
	if w == 0 && h == 0 {
		return
	}
	v.dc.DrawEllipse((min.X+w/2)*v.scale, (min.Y+h/2)*v.scale, w/2*v.scale, h/2*v.scale)
	v.stroke(c, width)
}

func (v *Vector) FillRect(min scene.Point, w, h float64, c scene.Color) {
	v.dc.DrawRectangle(min.X*v.scale, min.Y*v.scale, w*v.scale, h*v.scale)
	v.dc.SetColor(c)
	v.fail("fill", v.dc.Fill())
}

func (v *Vector) Text(at scene.Point, s string, size float64, c scene.Color) {
	if s == "" {
		return
	}
	src, err := fontSource()
	if err != nil {
		v.fail("font", err)
		return
	}
	face := src.Face(size * v.scale)
	v.dc.SetFont(face)
	v.dc.SetColor(c)
	v.dc.DrawString(s, at.X*v.scale, at.Y*v.scale+face.Metrics().Ascent)
}
