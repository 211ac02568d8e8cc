package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/designboard/internal/scene"
)

func boardWithIcon() *scene.Scene {
	s := scene.New(200, 100, scene.DefaultBackground)
	s.Add(scene.NewIcon(scene.Pt(10, 10), "database", "Users"))
	l := scene.NewLine(scene.KindLine, scene.Pt(150, 20), scene.MustColor("#ff0000"))
	l.End = scene.Pt(190, 20)
	s.Add(l)
	return s
}

func TestRasterizeScalesDimensions(t *testing.T) {
	img := Rasterize(boardWithIcon(), 2)
	assert.Equal(t, image.Rect(0, 0, 400, 200), img.Bounds())
}

func TestPixelsPaintsObjects(t *testing.T) {
	img := Rasterize(boardWithIcon(), 1)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(199, 99), "background")
	assert.Equal(t, color.RGBA(scene.MustColor("#2563eb")), img.RGBAAt(12, 12), "icon accent")
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(170, 20), "line")
}

func TestPixelsOffsetAndScale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	p := NewPixels(img, 2, image.Pt(10, 10))
	p.FillRect(scene.Pt(0, 0), 5, 5, scene.MustColor("#00ff00"))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(15, 15))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(21, 21))
}

func TestDegenerateShapesDoNotPanic(t *testing.T) {
	s := scene.New(20, 20, scene.DefaultBackground)
	s.Add(scene.NewShape(scene.KindEllipse, scene.Pt(5, 5), scene.DefaultInk))
	s.Add(scene.NewShape(scene.KindRect, scene.Pt(5, 5), scene.DefaultInk))
	s.Add(scene.NewLine(scene.KindArrow, scene.Pt(5, 5), scene.DefaultInk))
	s.Add(scene.NewStroke(scene.Pt(5, 5), scene.DefaultInk, 3))
	img := Rasterize(s, 1)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(5, 5))

	_, err := RasterizeVector(s, 2)
	require.NoError(t, err)
}

func TestRasterizeVector(t *testing.T) {
	img, err := RasterizeVector(boardWithIcon(), 2)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
	r, g, b, _ := img.At(398, 198).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(30, 30).RGBA()
	assert.Equal(t, [3]uint32{0x25, 0x63, 0xeb}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestMeasureText(t *testing.T) {
	w, h, err := MeasureText("Database", 14)
	require.NoError(t, err)
	assert.Greater(t, w, 0)
	assert.Greater(t, h, 0)
	w2, _, err := MeasureText("Database", 28)
	require.NoError(t, err)
	assert.Greater(t, w2, w)
}
