package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/designboard/internal/scene"
)

// PDF writes sc as a single vector page sized to the canvas, one point per
// canvas pixel.
func PDF(w io.Writer, sc *scene.Scene) error {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(sc.Width()), Ht: float64(sc.Height())},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	sc.Draw(&pdfSurface{pdf: p, w: float64(sc.Width()), h: float64(sc.Height())})
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type pdfSurface struct {
	pdf  *gofpdf.Fpdf
	w, h float64
}

func (s *pdfSurface) ink(c scene.Color, width float64) {
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetLineWidth(width)
}

func (s *pdfSurface) Clear(bg scene.Color) {
	s.pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	s.pdf.Rect(0, 0, s.w, s.h, "F")
}

func (s *pdfSurface) Polyline(pts []scene.Point, c scene.Color, width float64) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		s.pdf.Circle(pts[0].X, pts[0].Y, width/2, "F")
		return
	}
	s.ink(c, width)
	s.pdf.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.pdf.LineTo(p.X, p.Y)
	}
	s.pdf.DrawPath("D")
}

func (s *pdfSurface) Line(a, b scene.Point, c scene.Color, width float64) {
	s.ink(c, width)
	s.pdf.Line(a.X, a.Y, b.X, b.Y)
}

func (s *pdfSurface) StrokeRect(min scene.Point, w, h float64, c scene.Color, width float64) {
	s.ink(c, width)
	s.pdf.Rect(min.X, min.Y, w, h, "D")
}

func (s *pdfSurface) StrokeEllipse(min scene.Point, w, h float64, c scene.Color, width float64) {
	s.ink(c, width)
	s.pdf.Ellipse(min.X+w/2, min.Y+h/2, w/2, h/2, 0, "D")
}

func (s *pdfSurface) FillRect(min scene.Point, w, h float64, c scene.Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.Rect(min.X, min.Y, w, h, "F")
}

func (s *pdfSurface) Text(at scene.Point, str string, size float64, c scene.Color) {
	if str == "" {
		return
	}
	tr := s.pdf.UnicodeTranslatorFromDescriptor("")
	s.pdf.SetFont("Helvetica", "", size)
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	s.pdf.Text(at.X, at.Y+size*0.8, tr(str))
}
