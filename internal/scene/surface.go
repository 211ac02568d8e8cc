package scene

// Surface is the drawing capability a renderer provides. Coordinates are
// canvas-local logical pixels; implementations apply their own scale.
type Surface interface {
	Clear(bg Color)
	Polyline(pts []Point, c Color, width float64)
	Line(a, b Point, c Color, width float64)
	StrokeRect(min Point, w, h float64, c Color, width float64)
	StrokeEllipse(min Point, w, h float64, c Color, width float64)
	FillRect(min Point, w, h float64, c Color)
	// Text draws s with its top-left corner at p.
	Text(p Point, s string, size float64, c Color)
}

// Draw paints the background and then every object in z-order.
func (s *Scene) Draw(dst Surface) {
	dst.Clear(s.background)
	for i := range s.objects {
		DrawObject(dst, &s.objects[i])
	}
}

// DrawObject paints a single object.
func DrawObject(dst Surface, o *Object) {
	switch o.Kind {
	case KindStroke:
		dst.Polyline(o.Points, o.Color, o.Width)
	case KindRect:
		dst.StrokeRect(o.Pos, o.W, o.H, o.Color, o.Width)
	case KindEllipse:
		dst.StrokeEllipse(o.Pos, o.W, o.H, o.Color, o.Width)
	case KindLine, KindArrow:
		dst.Line(o.Start, o.End, o.Color, o.Width)
	case KindText:
		dst.Text(o.Pos, o.Text, o.FontSize, o.Color)
	case KindIcon:
		dst.FillRect(o.Pos, o.W, o.H, o.Color)
		size := o.FontSize
		if size <= 0 {
			size = IconLabelSize
		}
		white := Color{R: 255, G: 255, B: 255, A: 255}
		tag := o.Category
		if c, ok := LookupIcon(o.Category); ok {
			tag = c.Label
		}
		inset := Point{
			X: o.Pos.X + (o.W-textAdvance(tag, size))/2,
			Y: o.Pos.Y + (o.H-size)/2,
		}
		dst.Text(inset, tag, size, white)
		label := Point{
			X: o.Pos.X + (o.W-textAdvance(o.Text, size))/2,
			Y: o.Pos.Y + o.H + size*0.25,
		}
		dst.Text(label, o.Text, size, IconLabelColor)
	}
}
