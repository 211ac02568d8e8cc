package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/designboard/internal/notify"
	"github.com/example/designboard/internal/platform"
	"github.com/example/designboard/internal/scene"
)

func sample() *scene.Scene {
	s := scene.New(300, 150, scene.DefaultBackground)
	r := scene.NewShape(scene.KindRect, scene.Pt(10, 10), scene.DefaultInk)
	r.Resize(scene.Pt(60, 50))
	s.Add(r)
	s.Add(scene.NewIcon(scene.Pt(100, 20), "cache", "Redis"))
	txt := scene.NewText(scene.Pt(20, 100), scene.DefaultInk)
	txt.Text = "Read path"
	s.Add(txt)
	return s
}

func TestFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "system-design-1700000000123.png", Filename(ts))
}

func TestExportWritesDoubleSizePNG(t *testing.T) {
	dir := t.TempDir()
	sc := sample()
	before, err := sc.Serialize()
	require.NoError(t, err)

	svc := &Service{Dir: dir, Now: func() time.Time { return time.UnixMilli(42) }}
	res, err := svc.Export(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "system-design-42.png"), res.Path)
	assert.Equal(t, 600, res.Width)
	assert.Equal(t, 300, res.Height)
	assert.False(t, res.Copied)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 300, cfg.Height)

	after, err := sc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestExportFailureNotifiesAndWritesNothing(t *testing.T) {
	dir := t.TempDir()
	var bodies []string
	n := notify.New(notify.DefaultPreferences()).WithSender(func(_, body string, _ platform.Options) error {
		bodies = append(bodies, body)
		return nil
	})
	n.Enable(notify.EventExportFailed, true)

	svc := &Service{
		Dir:      dir,
		Notifier: n,
		Rasterize: func(*scene.Scene, float64) (image.Image, error) {
			return nil, errors.New("no surface")
		},
	}
	_, err := svc.Export(context.Background(), sample())
	require.Error(t, err)
	assert.Equal(t, []string{"Export failed: rasterize: no surface"}, bodies)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportCopiesWhenAsked(t *testing.T) {
	var copied image.Image
	svc := &Service{
		Dir:       t.TempDir(),
		Scale:     1,
		Copy:      true,
		CopyImage: func(img image.Image) error { copied = img; return nil },
	}
	res, err := svc.Export(context.Background(), sample())
	require.NoError(t, err)
	assert.True(t, res.Copied)
	require.NotNil(t, copied)
	assert.Equal(t, 300, copied.Bounds().Dx())
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Service{Dir: t.TempDir()}).Export(ctx, sample())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sample()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
