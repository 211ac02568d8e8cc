package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *Scene {
	t.Helper()
	s := New(0, 0, DefaultBackground)
	stroke := NewStroke(Pt(1, 1), DefaultInk, FreehandWidth)
	stroke.Extend(Pt(5, 5))
	stroke.Extend(Pt(9, 2))
	s.Add(stroke)
	rect := NewShape(KindRect, Pt(100, 100), MustColor("#ff0000"))
	rect.Resize(Pt(40, 30))
	s.Add(rect)
	s.Add(NewLine(KindArrow, Pt(0, 0), DefaultInk))
	s.Add(NewText(Pt(10, 10), DefaultInk))
	s.Add(NewIcon(Pt(300, 200), "database", "Users DB"))
	s.Add(NewEraserStroke(Pt(4, 4), s.Background()))
	return s
}

func TestRoundTrip(t *testing.T) {
	s := populated(t)
	snap, err := s.Serialize()
	require.NoError(t, err)

	fresh := New(10, 10, MustColor("black"))
	require.NoError(t, fresh.Restore(snap))
	again, err := fresh.Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(snap), string(again))
	assert.Equal(t, s.Len(), fresh.Len())
	assert.Equal(t, DefaultWidth, fresh.Width())
	assert.Equal(t, DefaultHeight, fresh.Height())
}

func TestEmptySceneSerializesObjectsArray(t *testing.T) {
	snap, err := New(0, 0, DefaultBackground).Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(snap), `"objects":[]`)
}

func TestRestoreBadSnapshotLeavesSceneUntouched(t *testing.T) {
	s := populated(t)
	before, err := s.Serialize()
	require.NoError(t, err)

	for _, bad := range []Snapshot{Snapshot("{"), Snapshot(`{"width":0,"height":10}`), Snapshot(`{"width":1,"height":1,"objects":[{"kind":"blob"}]}`)} {
		err := s.Restore(bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadSnapshot), "got %v", err)
	}
	after, err := s.Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRestoreDoesNotAlias(t *testing.T) {
	s := populated(t)
	snap, err := s.Serialize()
	require.NoError(t, err)
	require.NoError(t, s.Restore(snap))
	o, ok := s.At(0)
	require.True(t, ok)
	o.Extend(Pt(50, 50))

	other := New(0, 0, DefaultBackground)
	require.NoError(t, other.Restore(snap))
	o2, _ := other.At(0)
	assert.Len(t, o2.Points, 3)
}

func TestRemoveAllResetsBackground(t *testing.T) {
	s := New(0, 0, DefaultBackground)
	s.Add(NewStroke(Pt(0, 0), DefaultInk, 3))
	require.NoError(t, s.Restore(mustSnapshot(t, New(0, 0, MustColor("#eeeeee")))))
	s.Add(NewStroke(Pt(0, 0), DefaultInk, 3))
	s.RemoveAll()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, DefaultBackground, s.Background())
}

func mustSnapshot(t *testing.T, s *Scene) Snapshot {
	t.Helper()
	snap, err := s.Serialize()
	require.NoError(t, err)
	return snap
}

func TestRemoveTakesArrowheads(t *testing.T) {
	s := New(0, 0, DefaultBackground)
	s.Add(NewStroke(Pt(0, 0), DefaultInk, 3))
	arrow := NewLine(KindArrow, Pt(0, 0), DefaultInk)
	arrow.End = Pt(100, 0)
	h := s.Add(arrow)
	left, right, ok := ArrowHead(arrow.Start, arrow.End, ArrowHeadLength)
	require.True(t, ok)
	for _, seg := range [][2]Point{left, right} {
		head := NewLine(KindLine, seg[0], DefaultInk)
		head.End = seg[1]
		head.Parent = arrow.ID
		s.Add(head)
	}
	require.Equal(t, 4, s.Len())
	require.True(t, s.Remove(h))
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Remove(Handle(7)))
}

func TestNormalizeRect(t *testing.T) {
	pos, w, h := NormalizeRect(Pt(100, 100), Pt(40, 30))
	assert.Equal(t, Pt(40, 30), pos)
	assert.Equal(t, 60.0, w)
	assert.Equal(t, 70.0, h)
}

func TestArrowHeadGeometry(t *testing.T) {
	left, right, ok := ArrowHead(Pt(0, 0), Pt(100, 0), ArrowHeadLength)
	require.True(t, ok)
	want := map[float64]bool{-150: false, 150: false}
	for _, seg := range [][2]Point{left, right} {
		assert.Equal(t, Pt(100, 0), seg[1])
		dx, dy := seg[0].X-seg[1].X, seg[0].Y-seg[1].Y
		assert.InDelta(t, ArrowHeadLength, math.Hypot(dx, dy), 1e-9)
		deg := math.Round(math.Atan2(dy, dx) * 180 / math.Pi)
		_, known := want[deg]
		require.True(t, known, "unexpected angle %v", deg)
		want[deg] = true
	}
	assert.True(t, want[-150] && want[150])
}

func TestArrowHeadDegenerate(t *testing.T) {
	_, _, ok := ArrowHead(Pt(5, 5), Pt(5.2, 5.1), ArrowHeadLength)
	assert.False(t, ok)
}

func TestHitTestTopmostSelectable(t *testing.T) {
	s := New(0, 0, DefaultBackground)
	a := NewShape(KindRect, Pt(0, 0), DefaultInk)
	a.Resize(Pt(100, 100))
	s.Add(a)
	b := NewShape(KindEllipse, Pt(50, 50), DefaultInk)
	b.Resize(Pt(150, 150))
	s.Add(b)

	_, ok := s.HitTest(Pt(60, 60))
	assert.False(t, ok, "nothing is selectable yet")

	s.SetSelectable(true)
	h, ok := s.HitTest(Pt(60, 60))
	require.True(t, ok)
	assert.Equal(t, Handle(1), h)
	h, ok = s.HitTest(Pt(10, 10))
	require.True(t, ok)
	assert.Equal(t, Handle(0), h)
	_, ok = s.HitTest(Pt(500, 500))
	assert.False(t, ok)
}

func TestLineHitUsesSegmentDistance(t *testing.T) {
	l := NewLine(KindLine, Pt(0, 0), DefaultInk)
	l.End = Pt(100, 100)
	assert.True(t, l.Hit(Pt(50, 52)))
	assert.False(t, l.Hit(Pt(90, 10)))
}

func TestTranslate(t *testing.T) {
	s := NewStroke(Pt(1, 2), DefaultInk, 3)
	s.Extend(Pt(3, 4))
	s.Translate(Pt(10, 10))
	assert.Equal(t, []Point{Pt(11, 12), Pt(13, 14)}, s.Points)
}

func TestKindText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("Arrow")))
	assert.Equal(t, KindArrow, k)
	assert.Error(t, k.UnmarshalText([]byte("hexagon")))
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestIconFallbackAccent(t *testing.T) {
	assert.Equal(t, MustColor("#2563eb"), NewIcon(Pt(0, 0), "database", "db").Color)
	assert.Equal(t, IconFallback, NewIcon(Pt(0, 0), "quantum", "q").Color)
	assert.Len(t, IconCategories, 10)
}

type recorder struct {
	calls []string
}

func (r *recorder) Clear(Color) { r.calls = append(r.calls, "clear") }
func (r *recorder) Polyline([]Point, Color, float64) { r.calls = append(r.calls, "polyline") }
func (r *recorder) Line(Point, Point, Color, float64) { r.calls = append(r.calls, "line") }
func (r *recorder) StrokeRect(Point, float64, float64, Color, float64) {
	r.calls = append(r.calls, "rect")
}
func (r *recorder) StrokeEllipse(Point, float64, float64, Color, float64) {
	r.calls = append(r.calls, "ellipse")
}
func (r *recorder) FillRect(Point, float64, float64, Color) { r.calls = append(r.calls, "fill") }
func (r *recorder) Text(Point, string, float64, Color) { r.calls = append(r.calls, "text") }

func TestDrawOrder(t *testing.T) {
	var r recorder
	populated(t).Draw(&r)
	assert.Equal(t, []string{"clear", "polyline", "rect", "line", "text", "fill", "text", "text", "polyline"}, r.calls)
}
