package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Drawing defaults shared by the tools and the renderers.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800

	FreehandWidth = 3
	ShapeWidth    = 2
	EraserWidth   = 20

	// ArrowHeadLength is the length of each arrowhead segment.
	ArrowHeadLength = 15
	// ArrowEpsilon is the shortest shaft that still gets an arrowhead.
	ArrowEpsilon = 0.5

	TextFontSize    = 20
	TextPlaceholder = "Type here"
)

var (
	DefaultBackground = Color{R: 255, G: 255, B: 255, A: 255}
	DefaultInk        = Color{A: 255}
)

// Point is a position in canvas-local logical pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Kind tags the variant held by an Object.
type Kind int

const (
	KindStroke Kind = iota
	KindRect
	KindEllipse
	KindLine
	KindArrow
	KindText
	KindIcon
)

var kindNames = []string{"stroke", "rect", "ellipse", "line", "arrow", "text", "icon"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range kindNames {
		if n == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", string(b))
}

// Object is one drawable primitive. Which fields are meaningful depends on
// Kind:
//
//	stroke         Points, Color, Width, Eraser
//	rect, ellipse  Anchor (gesture start), Pos (top-left), W, H, Color, Width
//	line, arrow    Start, End, Color, Width; arrowhead lines carry Parent
//	text           Pos, Text, Color, FontSize
//	icon           Pos, W, H, Category, Text (label), Color (accent)
type Object struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Points   []Point `json:"points,omitempty"`
	Anchor   Point   `json:"anchor"`
	Pos      Point   `json:"pos"`
	W        float64 `json:"w,omitempty"`
	H        float64 `json:"h,omitempty"`
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	Color    Color   `json:"color"`
	Width    float64 `json:"width,omitempty"`
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	Category string  `json:"category,omitempty"`
	Parent   string  `json:"parent,omitempty"`
	Eraser   bool    `json:"eraser,omitempty"`

	// Selectable is interaction state owned by the tool controller.
	Selectable bool `json:"-"`
}

func newID() string { return uuid.NewString() }

// NewStroke starts a freehand stroke at p.
func NewStroke(p Point, c Color, width float64) Object {
	return Object{ID: newID(), Kind: KindStroke, Points: []Point{p}, Color: c, Width: width}
}

// NewEraserStroke starts a stroke painted in the background colour.
func NewEraserStroke(p Point, background Color) Object {
	o := NewStroke(p, background, EraserWidth)
	o.Eraser = true
	return o
}

// NewShape creates a zero-sized rectangle or ellipse anchored at p.
func NewShape(kind Kind, p Point, c Color) Object {
	return Object{ID: newID(), Kind: kind, Anchor: p, Pos: p, Color: c, Width: ShapeWidth}
}

// NewLine creates a zero-length line or arrow shaft starting at p.
func NewLine(kind Kind, p Point, c Color) Object {
	return Object{ID: newID(), Kind: kind, Start: p, End: p, Color: c, Width: ShapeWidth}
}

// NewText creates a text object showing the placeholder.
func NewText(p Point, c Color) Object {
	return Object{ID: newID(), Kind: KindText, Pos: p, Text: TextPlaceholder, Color: c, FontSize: TextFontSize}
}

// Extend appends p to a stroke.
func (o *Object) Extend(p Point) {
	if n := len(o.Points); n > 0 && o.Points[n-1] == p {
		return
	}
	o.Points = append(o.Points, p)
}

// Resize recomputes a shape's box from its anchor to p so that width and
// height are never negative.
func (o *Object) Resize(p Point) {
	o.Pos, o.W, o.H = NormalizeRect(o.Anchor, p)
}

// Translate moves the object by d.
func (o *Object) Translate(d Point) {
	for i := range o.Points {
		o.Points[i] = o.Points[i].Add(d)
	}
	o.Anchor = o.Anchor.Add(d)
	o.Pos = o.Pos.Add(d)
	o.Start = o.Start.Add(d)
	o.End = o.End.Add(d)
}

func (o Object) clone() Object {
	if o.Points != nil {
		o.Points = append([]Point(nil), o.Points...)
	}
	return o
}
