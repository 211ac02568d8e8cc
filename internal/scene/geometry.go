package scene

import "math"

// NormalizeRect returns the top-left corner and non-negative size of the box
// spanned by a and b.
func NormalizeRect(a, b Point) (Point, float64, float64) {
	return Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}, math.Abs(b.X - a.X), math.Abs(b.Y - a.Y)
}

// ArrowHead returns the two arrowhead segments for a shaft from start to end.
// Each segment runs from its outer point to the tip at end and sits 150
// degrees either side of the shaft direction. ok is false when the shaft is
// shorter than ArrowEpsilon.
func ArrowHead(start, end Point, length float64) (left, right [2]Point, ok bool) {
	dx, dy := end.X-start.X, end.Y-start.Y
	if math.Hypot(dx, dy) < ArrowEpsilon {
		return left, right, false
	}
	theta := math.Atan2(dy, dx)
	outer := func(a float64) Point {
		return Point{end.X - length*math.Cos(a), end.Y - length*math.Sin(a)}
	}
	left = [2]Point{outer(theta - math.Pi/6), end}
	right = [2]Point{outer(theta + math.Pi/6), end}
	return left, right, true
}

// Rect is an axis-aligned box.
type Rect struct {
	Min, Max Point
}

func (r Rect) Empty() bool { return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset grows r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{Point{r.Min.X - d, r.Min.Y - d}, Point{r.Max.X + d, r.Max.Y + d}}
}

func pointsBounds(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{Min: Point{1, 1}}
	}
	r := Rect{pts[0], pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// textAdvance approximates the rendered width of s at the given size.
func textAdvance(s string, size float64) float64 {
	n := 0
	for range s {
		n++
	}
	return float64(n) * size * 0.55
}

// Bounds returns the object's bounding box in canvas coordinates.
func (o *Object) Bounds() Rect {
	switch o.Kind {
	case KindStroke:
		return pointsBounds(o.Points...).Inset(o.Width / 2)
	case KindRect, KindEllipse:
		return Rect{o.Pos, Point{o.Pos.X + o.W, o.Pos.Y + o.H}}
	case KindLine, KindArrow:
		return pointsBounds(o.Start, o.End).Inset(o.Width / 2)
	case KindText:
		return Rect{o.Pos, Point{o.Pos.X + textAdvance(o.Text, o.FontSize), o.Pos.Y + o.FontSize*1.2}}
	case KindIcon:
		return Rect{o.Pos, Point{o.Pos.X + o.W, o.Pos.Y + o.H + IconLabelSize*1.5}}
	}
	return Rect{Min: Point{1, 1}}
}

func segmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// hitSlop is the pointer tolerance for thin objects.
const hitSlop = 4

// Hit reports whether p falls on the object.
func (o *Object) Hit(p Point) bool {
	switch o.Kind {
	case KindLine, KindArrow:
		return segmentDistance(p, o.Start, o.End) <= o.Width/2+hitSlop
	case KindStroke:
		if len(o.Points) == 1 {
			return segmentDistance(p, o.Points[0], o.Points[0]) <= o.Width/2+hitSlop
		}
		for i := 1; i < len(o.Points); i++ {
			if segmentDistance(p, o.Points[i-1], o.Points[i]) <= o.Width/2+hitSlop {
				return true
			}
		}
		return false
	}
	return o.Bounds().Inset(hitSlop).Contains(p)
}
